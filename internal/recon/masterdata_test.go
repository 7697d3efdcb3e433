package recon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
	"lekha/internal/recon"
	"lekha/mocks"
)

func TestLoadMasterData_AllTablesLoad(t *testing.T) {
	itemRepo := new(mocks.MockItemRepo)
	taxRepo := new(mocks.MockTaxRepo)
	tdsRepo := new(mocks.MockTDSRepo)

	itemRepo.On("List", mock.Anything, 1000, 0).Return([]domain.ItemMaster{
		{HSNCode: "9983", TaxCode: "GST18"},
	}, nil)
	taxRepo.On("List", mock.Anything, 1000, 0).Return([]domain.TaxCode{
		{Code: "GST18", CGSTPercent: "9", SGSTPercent: "9"},
	}, nil)
	tdsRepo.On("List", mock.Anything, 1000, 0).Return([]domain.TDSCode{
		{Code: "194C", Percent: "2"},
	}, nil)

	md := recon.LoadMasterData(context.Background(), itemRepo, taxRepo, tdsRepo, 1000)

	assert.True(t, md.Ready())
	item, ok := md.ItemByHSN("9983")
	assert.True(t, ok)
	assert.Equal(t, "GST18", item.TaxCode)
	itemRepo.AssertExpectations(t)
	taxRepo.AssertExpectations(t)
	tdsRepo.AssertExpectations(t)
}

func TestLoadMasterData_FailedFetchDegradesToEmpty(t *testing.T) {
	itemRepo := new(mocks.MockItemRepo)
	taxRepo := new(mocks.MockTaxRepo)
	tdsRepo := new(mocks.MockTDSRepo)

	itemRepo.On("List", mock.Anything, 500, 0).Return(nil, errors.New("connection refused"))
	taxRepo.On("List", mock.Anything, 500, 0).Return([]domain.TaxCode{{Code: "GST18"}}, nil)
	tdsRepo.On("List", mock.Anything, 500, 0).Return([]domain.TDSCode{{Code: "194C"}}, nil)

	md := recon.LoadMasterData(context.Background(), itemRepo, taxRepo, tdsRepo, 500)

	assert.False(t, md.Ready())
	_, ok := md.ItemByHSN("9983")
	assert.False(t, ok)
	// The tables that did load still resolve.
	_, ok = md.TaxByCode("GST18")
	assert.True(t, ok)
}

func TestMasterData_LookupNormalizesItemKeys(t *testing.T) {
	md := recon.NewMasterData(
		[]domain.ItemMaster{{HSNCode: " 9983 ", Description: "Consulting"}},
		nil, nil,
	)

	item, ok := md.ItemByHSN("9983")
	assert.True(t, ok)
	assert.Equal(t, "Consulting", item.Description)

	_, ok = md.ItemByHSN("  9983\t")
	assert.True(t, ok)
}

func TestMasterData_NilSafeLookups(t *testing.T) {
	var md *recon.MasterData

	_, ok := md.ItemByHSN("9983")
	assert.False(t, ok)
	_, ok = md.TaxByCode("GST18")
	assert.False(t, ok)
	_, ok = md.TDSByCode("194C")
	assert.False(t, ok)
	assert.False(t, md.Ready())
}

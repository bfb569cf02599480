package mcp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/limfang/btoflow/internal/domain/project"
)

func specParams() projectSpecParams {
	return projectSpecParams{
		Name:         "Acacia Breeze",
		Neighborhood: "Yishun",
		Slots: []flatSlotParam{
			{Type: "2-Room", Units: 2, Price: "350000"},
			{Type: "3-Room", Units: 3, Price: "450000.50"},
		},
		OpenDate:     "2025-02-15",
		CloseDate:    "2025-03-20",
		OfficerSlots: 10,
	}
}

func TestProjectSpecParams(t *testing.T) {
	spec, err := specParams().toSpec()
	require.NoError(t, err)
	require.Equal(t, project.TwoRoom, spec.Slots[0].Type)
	require.Equal(t, "350000", spec.Slots[0].Price.String())
	require.Equal(t, "450000.5", spec.Slots[1].Price.String())
	require.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), spec.OpenDate)
}

func TestProjectSpecParams_Invalid(t *testing.T) {
	p := specParams()
	p.Slots = p.Slots[:1]
	_, err := p.toSpec()
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_INPUT", apiErr.Code)

	p = specParams()
	p.Slots[0].Price = "cheap"
	_, err = p.toSpec()
	require.ErrorAs(t, err, &apiErr)

	p = specParams()
	p.OpenDate = "15/02/2025"
	_, err = p.toSpec()
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Message, "open_date")
}

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
)

func TestParseEndAt(t *testing.T) {
	got, err := parseEndAt("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseEndAt("2024-06-01T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), *got)

	_, err = parseEndAt("tomorrow")
	assert.Error(t, err)
}

func TestExpectedVersion(t *testing.T) {
	assert.Nil(t, expectedVersion(-1))
	require.NotNil(t, expectedVersion(0))
	assert.Equal(t, int64(3), *expectedVersion(3))
}

func TestRequired(t *testing.T) {
	assert.NoError(t, required(map[string]string{"id": "sp-1"}))
	assert.ErrorIs(t, required(map[string]string{"id": ""}), errMissingFlag)
}

func TestWriteSalePrices(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	var buf bytes.Buffer

	err := writeSalePrices(&buf, []*contracts.SalePriceDTO{{
		SalePriceID: "sp-1",
		PriceID:     "price-1",
		Value:       decimal.RequireFromString("9.5"),
		StartAt:     &start,
		Bucket:      "forever",
		Enabled:     true,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"sp-1", "price-1", "9.50", "2024-06-01T10:00:00Z", "-", "forever", "true"}, strings.Fields(lines[1]))
}

func TestCommandsAreRegistered(t *testing.T) {
	for _, name := range []string{"create", "start", "stop", "destroy", "put-on-sale", "ordered", "for-product", "display", "events", "ack"} {
		assert.Contains(t, commands, name)
		assert.Contains(t, usage, name)
	}
}

func TestRunAck_RequiresEventIDs(t *testing.T) {
	var buf bytes.Buffer
	err := runAck(context.Background(), nil, nil, &buf)
	assert.ErrorIs(t, err, errMissingFlag)
}

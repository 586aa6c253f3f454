package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
)

func testSnapshot(t *testing.T) entity.Snapshot {
	t.Helper()
	h := entity.NewSeeded()
	require.NoError(t, h.Housekeepers.Insert(domain.Housekeeper{Name: "Susan", Age: 23, Availability: []domain.Day{domain.Monday, domain.Friday}}))
	require.NoError(t, h.Assignments.Insert(domain.Assignment{Housekeeper: "Susan", RoomID: 301}))
	require.NoError(t, h.Items.Insert(domain.Item{Name: "Towel", Pax: 12}))
	require.NoError(t, h.Performances.Insert(domain.Performance{Housekeeper: "Susan", Rating: 5}))
	h.Satisfactions.Insert(domain.Satisfaction{Customer: "Mr Tan", Value: 4})
	h.Events.Insert(domain.Event{Description: "Fire drill", Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)})
	return h.Snapshot()
}

func TestBytes_OneSheetPerStore(t *testing.T) {
	data, err := Bytes(testSnapshot(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		SheetRooms, SheetHousekeepers, SheetAssignments, SheetItems,
		SheetPerformances, SheetSatisfactions, SheetEvents,
	}, f.GetSheetList())
}

func TestBytes_Rows(t *testing.T) {
	data, err := Bytes(testSnapshot(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rooms, err := f.GetRows(SheetRooms)
	require.NoError(t, err)
	require.Len(t, rooms, len(entity.SeedRooms())+1)
	assert.Equal(t, []string{"Room", "Category", "Level", "Occupancy"}, rooms[0])
	assert.Equal(t, "101", rooms[1][0])

	staff, err := f.GetRows(SheetHousekeepers)
	require.NoError(t, err)
	assert.Equal(t, []string{"Susan", "23", "mon fri"}, staff[1])

	events, err := f.GetRows(SheetEvents)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Fire drill", "2026-03-14"}, events[1])
}

func TestBytes_EmptyStoresKeepHeaders(t *testing.T) {
	data, err := Bytes(entity.New().Snapshot())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	items, err := f.GetRows(SheetItems)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Item", "Pax"}}, items)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel.xlsx")
	require.NoError(t, WriteFile(testSnapshot(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	items, err := f.GetRows(SheetItems)
	require.NoError(t, err)
	assert.Equal(t, []string{"Towel", "12"}, items[1])
}

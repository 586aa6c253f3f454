package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/roach88/hotelite/internal/grammar"
	"github.com/roach88/hotelite/internal/store"
)

// seedDatabase runs input through the REPL against a new database.
func seedDatabase(t *testing.T, input string) string {
	t.Helper()
	dbPath := tempDB(t)
	run := execute(t, input, "--db", dbPath)
	require.NoError(t, run.err)
	return dbPath
}

const busyDay = `add housekeeper Susan / 23
add housekeeper Tom / 40
assign Susan / 301
check in 301
add item Towel / 10
update item pax /Name: Towel /New Pax: 4
add satisfaction Mr Lee / 5
add event Audit !! 2026-02-01
check out 301
is a new week
`

func TestReplay_Deterministic(t *testing.T) {
	dbPath := seedDatabase(t, busyDay)

	run := execute(t, "", "--db", dbPath, "replay")
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, "Replayed 10 journal entries")
	assert.Contains(t, run.stdout, "✓ All stores match")
}

func TestReplay_JSONAndInto(t *testing.T) {
	dbPath := seedDatabase(t, busyDay)
	into := filepath.Join(t.TempDir(), "rebuilt.db")

	run := execute(t, "", "--db", dbPath, "--format", "json", "replay", "--into", into)
	require.NoError(t, run.err)

	var resp struct {
		Status string       `json:"status"`
		Data   ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 10, resp.Data.Entries)
	assert.True(t, resp.Data.Deterministic)

	rebuilt := loadHotel(t, into)
	assert.Equal(t, "Susan", rebuilt.HousekeeperName(301))
	item, ok := rebuilt.Items.Get("Towel")
	require.True(t, ok)
	assert.Equal(t, 4, item.Pax)

	run = execute(t, "", "--db", dbPath, "replay", "--into", into)
	require.Error(t, run.err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.err))
	assert.Contains(t, run.err.Error(), "already exists")
}

func TestReplay_DetectsDivergence(t *testing.T) {
	dbPath := seedDatabase(t, "add item Towel / 10\n")

	// Change a table behind the journal's back.
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.DB().Exec(`UPDATE items SET pax = 99`)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	run := execute(t, "", "--db", dbPath, "replay")
	require.Error(t, run.err)
	assert.Equal(t, ExitFailure, GetExitCode(run.err))
	assert.Contains(t, run.stdout, "✗ items differ")
	assert.Contains(t, run.stdout, "✗ Replay verification failed")
}

func TestReplay_FailedCommand(t *testing.T) {
	dbPath := seedDatabase(t, "add housekeeper Susan / 23\n")

	// A journal row whose input no longer applies.
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.DB().Exec(`INSERT INTO journal (id, seq, command, input, kinds, at) VALUES ('x', 2, 'add-housekeeper', 'add housekeeper Susan / 23', '["housekeepers"]', '')`)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	run := execute(t, "", "--db", dbPath, "--format", "json", "replay")
	require.Error(t, run.err)
	assert.Equal(t, ExitFailure, GetExitCode(run.err))

	var resp struct {
		Status string       `json:"status"`
		Data   ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Entries)
	assert.Contains(t, resp.Data.Failed, "replay seq 2")
	assert.Contains(t, resp.Data.Failed, "DuplicateKey")
}

func TestReplay_DatabaseNotFound(t *testing.T) {
	run := execute(t, "", "--db", filepath.Join(t.TempDir(), "absent.db"), "replay")
	require.Error(t, run.err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.err))
	assert.Contains(t, run.err.Error(), "database not found")
}

func TestJournal(t *testing.T) {
	dbPath := seedDatabase(t, busyDay)

	run := execute(t, "", "--db", dbPath, "journal")
	require.NoError(t, run.err)
	lines := strings.Split(strings.TrimSpace(run.stdout), "\n")
	require.Len(t, lines, 10)
	assert.Contains(t, lines[0], "add-housekeeper")
	assert.Contains(t, lines[0], "2026-01-07 09:00:00")
	assert.Contains(t, lines[2], "assign Susan / 301")

	run = execute(t, "", "--db", dbPath, "--format", "json", "journal", "--command", "add-housekeeper")
	require.NoError(t, run.err)
	var resp struct {
		Data JournalResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &resp))
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, "add housekeeper Tom / 40", resp.Data.Entries[1].Input)
}

func TestJournal_Empty(t *testing.T) {
	dbPath := seedDatabase(t, "check all\n")

	run := execute(t, "", "--db", dbPath, "journal")
	require.NoError(t, run.err)
	assert.Equal(t, "No journal entries found.\n", run.stdout)
}

func TestExport(t *testing.T) {
	dbPath := seedDatabase(t, busyDay)
	out := filepath.Join(t.TempDir(), "hotel.xlsx")

	run := execute(t, "", "--db", dbPath, "export", "--out", out)
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, "✓ Exported 20 rooms, 2 housekeepers, 1 items")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Items")
}

func TestExport_RequiresOut(t *testing.T) {
	run := execute(t, "", "--db", seedDatabase(t, ""), "export")
	require.Error(t, run.err)
	assert.Contains(t, run.err.Error(), `required flag(s) "out" not set`)
}

func TestReplayInto_EmptyJournal(t *testing.T) {
	ctx := context.Background()
	src, err := store.Open(":memory:")
	require.NoError(t, err)
	defer src.Close()
	_, err = src.Load(ctx)
	require.NoError(t, err)

	dst, err := store.Open(":memory:")
	require.NoError(t, err)
	defer dst.Close()

	result, err := replayInto(ctx, grammar.DefaultPolicy(), newLogger(&RootOptions{}, &strings.Builder{}), src, dst)
	require.NoError(t, err)
	assert.Equal(t, ReplayResult{Deterministic: true}, result)
}

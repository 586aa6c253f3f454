// Package harness runs hotel scenarios: scripted command lines with expected
// outcomes, executed against a fresh seeded hotel persisted to an in-memory
// SQLite store.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	clock: 2026-01-07          # optional; the day assign records
//	policy:                    # optional; defaults to the business bounds
//	  age: {min: 21, max: 60}
//	setup:                     # lines that must succeed
//	  - add housekeeper Susan / 23
//	steps:
//	  - input: assign Susan / 301
//	    expect:
//	      status: ok
//	      kind: created
//	  - input: check in 999
//	    expect:
//	      status: error
//	      code: NotFound
//	assertions:
//	  - type: command_count
//	    command: assign
//	    count: 1
//	  - type: final_state
//	    table: assignments
//	    where: { room_id: 301 }
//	    expect: { housekeeper: Susan }
//
// # Expectations
//
// Each step may carry an expect clause. Status is "ok" or "error". Code is
// the error code for failures. Kind is the result kind for successes.
// Message is a substring of the reported message. Lines, when given, must
// match the rendered listing exactly.
//
// # Assertions
//
// Four assertion types are supported:
//   - command_count: a command succeeded exactly N times
//   - command_order: commands first succeeded in the listed order
//   - final_state: one row of a store table matches the expected columns
//   - row_count: a store table holds exactly N rows
//
// # Golden Transcripts
//
// Every run produces a transcript: one block per step with the input and
// its outcome. RunWithGolden compares it against
// testdata/golden/<name>.golden using goldie. Regenerate with:
//
//	go test ./internal/harness -update
//
// # Determinism
//
// The clock is fixed per scenario and journal ids come from a sequence
// generator, so a scenario produces the same transcript and the same
// database contents on every run.
package harness

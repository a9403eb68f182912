package dashboard_repo

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"

	"agroplan/internal/core/id"
	"agroplan/internal/domain/dashboard"
)

func baseRefuelSelect(companyID id.ID) squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("machine_id", "SUM(volume_liters) AS quantity").
		From("refuels").
		Where(squirrel.Eq{"company_id": companyID})
}

func TestDateScoped_NilPeriodAddsNoPredicate(t *testing.T) {
	companyID := id.New()

	sql, args, err := dateScoped(baseRefuelSelect(companyID), "refuel_date", nil).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT machine_id, SUM(volume_liters) AS quantity FROM refuels WHERE company_id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 {
		t.Fatalf("Args count mismatch\nwant: 1\ngot:  %d", len(args))
	}
}

func TestDateScoped_PeriodAddsInclusiveBounds(t *testing.T) {
	companyID := id.New()
	period := &dashboard.Period{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	sql, args, err := dateScoped(baseRefuelSelect(companyID), "refuel_date", period).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	// A refuel dated exactly on the cycle end stays in; the day after falls out.
	wantSQL := "SELECT machine_id, SUM(volume_liters) AS quantity FROM refuels" +
		" WHERE company_id = $1 AND refuel_date >= $2 AND refuel_date <= $3"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 3 {
		t.Fatalf("Args count mismatch\nwant: 3\ngot:  %d", len(args))
	}
	if got, ok := args[1].(time.Time); !ok || !got.Equal(period.Start) {
		t.Errorf("Start bound mismatch\nwant: %v\ngot:  %v", period.Start, args[1])
	}
	if got, ok := args[2].(time.Time); !ok || !got.Equal(period.End) {
		t.Errorf("End bound mismatch\nwant: %v\ngot:  %v", period.End, args[2])
	}
}

func TestCycleScoped(t *testing.T) {
	companyID := id.New()
	cycleA := id.New()
	cycleB := id.New()

	tests := []struct {
		name     string
		cycleIDs []id.ID
		wantSQL  string
		wantArgs int
	}{
		{
			name:     "EmptySetAddsNoPredicate",
			cycleIDs: nil,
			wantSQL:  "SELECT machine_id, SUM(volume_liters) AS quantity FROM refuels WHERE company_id = $1",
			wantArgs: 1,
		},
		{
			name:     "IDSetBecomesInClause",
			cycleIDs: []id.ID{cycleA, cycleB},
			wantSQL: "SELECT machine_id, SUM(volume_liters) AS quantity FROM refuels" +
				" WHERE company_id = $1 AND cycle_id IN ($2,$3)",
			wantArgs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := cycleScoped(baseRefuelSelect(companyID), tt.cycleIDs).ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != tt.wantArgs {
				t.Fatalf("Args count mismatch\nwant: %d\ngot:  %d", tt.wantArgs, len(args))
			}
		})
	}
}

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mkraev/booking-wizard/internal/adapters/postgres"
	"github.com/mkraev/booking-wizard/internal/domain"
)

func startArchive(t *testing.T, ctx context.Context) *postgres.Archive {
	t.Helper()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     "wizard",
				"POSTGRES_PASSWORD": "wizard",
				"POSTGRES_DB":       "wizard",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForListeningPort("5432/tcp"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { pgContainer.Terminate(ctx) })

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatal(err)
	}

	dsn := fmt.Sprintf("postgres://wizard:wizard@%s:%s/wizard?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)

	archive := postgres.NewArchive(pool)
	if err := archive.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}
	return archive
}

func intp(v int) *int { return &v }

func record(destination string) domain.SavedBooking {
	return domain.SavedBooking{
		BookingState: domain.BookingState{
			Citizenship: "Turkey",
			StartDate:   "2025-03-10",
			NumDays:     1,
			Destination: destination,
			BoardType:   domain.BoardHalf,
			DailySelections: map[int]domain.DaySelection{
				0: {HotelID: intp(101), DinnerID: intp(1)},
			},
			Step: 3,
		},
		ID:      uuid.NewString(),
		SavedAt: 1700000000000,
	}
}

func TestArchive_AppendListRemove(t *testing.T) {
	ctx := context.Background()
	archive := startArchive(t, ctx)

	first := record("Turkey")
	second := record("UAE")
	second.SavedAt = first.SavedAt + 1

	if err := archive.Append(ctx, first); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := archive.Append(ctx, second); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := archive.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != first.ID || records[1].ID != second.ID {
		t.Errorf("expected saved_at ordering, got %s then %s", records[0].ID, records[1].ID)
	}
	if records[0].Destination != "Turkey" || records[0].DailySelections[0].HotelID == nil {
		t.Errorf("snapshot did not round-trip: %+v", records[0].BookingState)
	}

	removed, err := archive.Remove(ctx, first.ID)
	if err != nil || !removed {
		t.Fatalf("expected removal, got removed=%v err=%v", removed, err)
	}
	removed, err = archive.Remove(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Error("second remove reported true")
	}

	records, err = archive.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != second.ID {
		t.Errorf("unexpected records after remove: %+v", records)
	}
}

func TestArchive_AppendDuplicateID(t *testing.T) {
	ctx := context.Background()
	archive := startArchive(t, ctx)

	rec := record("Italy")
	if err := archive.Append(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := archive.Append(ctx, rec); !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

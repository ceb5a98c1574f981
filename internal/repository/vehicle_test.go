package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lionscars/inventory/internal/models"
)

func setupVehicleMock(t *testing.T) (*PostgresVehicleRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresVehicleRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func mustBody(t *testing.T, v models.Vehicle) []byte {
	t.Helper()
	v.ID = 0
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal vehicle: %v", err)
	}
	return body
}

func TestVehicleListAll_Success(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	first := models.Vehicle{Brand: "Toyota", Model: "Corolla", Year: 2020, Price: 9000000}
	second := models.Vehicle{Brand: "Mazda", Model: "3", Year: 2018, Price: 7500000}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, body FROM vehicles ORDER BY id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).
			AddRow(int64(2), mustBody(t, second)).
			AddRow(int64(1), mustBody(t, first)))

	vehicles, skipped, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("expected no skipped rows, got %v", skipped)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}
	if vehicles[0].ID != 2 || vehicles[0].Brand != "Mazda" {
		t.Errorf("unexpected first vehicle: %+v", vehicles[0])
	}
	if vehicles[1].ID != 1 || vehicles[1].Brand != "Toyota" {
		t.Errorf("unexpected second vehicle: %+v", vehicles[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleListAll_SkipsMalformedBodies(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	good := models.Vehicle{Brand: "Kia", Model: "Rio", Year: 2021}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, body FROM vehicles ORDER BY id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body"}).
			AddRow(int64(9), []byte(`{"marca": `)).
			AddRow(int64(4), mustBody(t, good)))

	vehicles, skipped, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].ID != 4 {
		t.Fatalf("expected only the decodable row, got %+v", vehicles)
	}
	if len(skipped) != 1 || skipped[0] != 9 {
		t.Errorf("expected skipped = [9], got %v", skipped)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleListAll_QueryError(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, body FROM vehicles ORDER BY id DESC`)).
		WillReturnError(errors.New("query failed"))

	if _, _, err := repo.ListAll(context.Background()); err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleCreate_AssignsID(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	v := models.Vehicle{Brand: "Toyota", Model: "Corolla", Year: 2020, Price: 9000000}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO vehicles (body) VALUES ($1) RETURNING id`)).
		WithArgs(mustBody(t, v)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	created, err := repo.Create(context.Background(), v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 12 {
		t.Errorf("expected id 12, got %d", created.ID)
	}
	if created.Brand != "Toyota" || created.Year != 2020 {
		t.Errorf("created vehicle lost fields: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleCreate_StripsSubmittedID(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	v := models.Vehicle{ID: 99, Brand: "Suzuki", Model: "Swift"}

	// The stored body must not carry the client-submitted id.
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO vehicles (body) VALUES ($1) RETURNING id`)).
		WithArgs(mustBody(t, v)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	created, err := repo.Create(context.Background(), v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 3 {
		t.Errorf("expected store-assigned id 3, got %d", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleUpdate_Matched(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	v := models.Vehicle{Brand: "Honda", Model: "Civic"}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicles SET body = $2 WHERE id = $1`)).
		WithArgs(int64(5), mustBody(t, v)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	matched, err := repo.Update(context.Background(), 5, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !matched {
		t.Errorf("expected matched = true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleUpdate_MissingIDIsNoOp(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	v := models.Vehicle{Brand: "Honda", Model: "Civic"}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicles SET body = $2 WHERE id = $1`)).
		WithArgs(int64(404), mustBody(t, v)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	matched, err := repo.Update(context.Background(), 404, v)
	if err != nil {
		t.Fatalf("expected success on missing id, got error: %v", err)
	}
	if matched {
		t.Errorf("expected matched = false for missing id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleDelete_Idempotent(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM vehicles WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM vehicles WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 7); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := repo.Delete(context.Background(), 7); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleGetByID_Success(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	v := models.Vehicle{Brand: "Toyota", Model: "Corolla", Views: 3}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT body FROM vehicles WHERE id = $1`)).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(mustBody(t, v)))

	got, err := repo.GetByID(context.Background(), 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 8 || got.Brand != "Toyota" || got.Views != 3 {
		t.Errorf("unexpected vehicle: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT body FROM vehicles WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"body"}))

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleResetMetrics(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicles SET body = jsonb_set(jsonb_set(body, '{vistas}', '0'), '{interesados}', '0')`)).
		WillReturnResult(sqlmock.NewResult(0, 6))

	n, err := repo.ResetMetrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 6 {
		t.Errorf("expected 6 documents touched, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVehicleResetMetrics_Error(t *testing.T) {
	repo, mock, cleanup := setupVehicleMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicles SET body = jsonb_set`)).
		WillReturnError(errors.New("exec failed"))

	if _, err := repo.ResetMetrics(context.Background()); err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

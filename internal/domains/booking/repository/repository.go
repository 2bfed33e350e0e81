package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"meetroom/infras/otel"
	"meetroom/infras/postgres"
	"meetroom/internal/domains/booking/model"
	slotModel "meetroom/internal/domains/slot/model"
	"meetroom/shared"
	"meetroom/shared/constant"
	gDto "meetroom/shared/dto"
	gRepo "meetroom/shared/repository"

	"github.com/jmoiron/sqlx"
)

const advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

var (
	ErrSlotConflict = errors.New("time slot already booked")
	ErrNotFound     = errors.New("booking not found")
)

// Mutation decides which columns to change given the locked current row. Returning an empty map
// leaves the row untouched.
type Mutation func(current model.Booking) (map[string]any, error)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Reserve(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetConfirmedByDate(ctx context.Context, date slotModel.Date) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Apply(ctx context.Context, id string, mutate Mutation) (model.Booking, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Reserve inserts booking. A confirmed booking is written under the day lock after checking that
// no other confirmed booking overlaps it.
func (r *repositoryImpl) Reserve(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reserve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !booking.Status.Blocking() {
		return r.Insert(ctx, booking) //nolint:wrapcheck
	}

	err = postgres.WithTx(ctx, r.db.Write, func(tx *sqlx.Tx) error {
		if err := r.ensureFree(ctx, tx, booking); err != nil {
			return err
		}

		return r.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})

	return mapWriteError(err)
}

// Apply locks the row identified by id, asks mutate for the change and writes it. A change that
// makes the booking confirmed is checked against the other confirmed bookings of the day first.
func (r *repositoryImpl) Apply(ctx context.Context, id string, mutate Mutation) (res model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Apply")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = postgres.WithTx(ctx, r.db.Write, func(tx *sqlx.Tx) error {
		current, err := r.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if current.ID == constant.Empty {
			return ErrNotFound
		}

		fields, err := mutate(current)
		if err != nil {
			return err
		}

		if len(fields) == 0 {
			res = current

			return nil
		}

		if becomesConfirmed(current, fields) {
			if err := r.ensureFree(ctx, tx, current); err != nil {
				return err
			}
		}

		if err := r.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err //nolint:wrapcheck
		}

		res, err = r.GetForUpdateTx(ctx, tx, filter)

		return err //nolint:wrapcheck
	})

	return res, mapWriteError(err)
}

// GetConfirmedByDate returns the confirmed bookings of date ordered by start time.
func (r *repositoryImpl) GetConfirmedByDate(ctx context.Context, date slotModel.Date) ([]model.Booking, error) {
	params := gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}

	return r.GetAll(ctx, params, confirmedOn(date)) //nolint:wrapcheck
}

// ensureFree takes the lock for b's day and fails with ErrSlotConflict when another confirmed
// booking overlaps b.
func (r *repositoryImpl) ensureFree(ctx context.Context, tx *sqlx.Tx, b model.Booking) error {
	if _, err := tx.ExecContext(ctx, advisoryLockQuery, model.EntityName+":"+b.BookingDate.String()); err != nil {
		return fmt.Errorf("failed to lock booking date: %w", err)
	}

	params := gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}

	overlapping, err := r.GetAllTx(ctx, tx, params, overlappingConfirmed(b))
	if err != nil {
		return err //nolint:wrapcheck
	}

	if len(overlapping) > 0 {
		return ErrSlotConflict
	}

	return nil
}

func becomesConfirmed(current model.Booking, fields map[string]any) bool {
	status, ok := fields[model.FieldStatus]
	if !ok {
		return false
	}

	return fmt.Sprint(status) == string(model.StatusConfirmed) && current.Status != model.StatusConfirmed
}

func confirmedOn(date slotModel.Date) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// overlappingConfirmed matches confirmed rows of b's day whose [start, end) intersects b's.
func overlappingConfirmed(b model.Booking) gDto.FilterGroup {
	group := confirmedOn(b.BookingDate)
	group.Filters = append(group.Filters,
		gDto.Filter{ArgName: "range_end", Field: model.FieldStartTime, Value: b.EndTime, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{ArgName: "range_start", Field: model.FieldEndTime, Value: b.StartTime, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	)

	if b.ID != constant.Empty {
		group.Filters = append(group.Filters,
			gDto.Filter{ArgName: "self_id", Field: model.FieldID, Value: b.ID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		)
	}

	return group
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}

	if gRepo.IsExclusionViolation(err) {
		return fmt.Errorf("%w: %w", ErrSlotConflict, err)
	}

	return err
}

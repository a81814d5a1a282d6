package rentals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
	"github.com/angelmondragon/rentalhub-backend/pkg/metrics"
	"github.com/angelmondragon/rentalhub-backend/pkg/pagination"
	"github.com/angelmondragon/rentalhub-backend/pkg/types"
)

const (
	productUnavailableMsg = "This product is not available for rental"
	startDateMsg          = "The start date must be a date after or equal to today."
)

// Removal tells whether DeleteBooking removed the row or kept it cancelled.
type Removal string

const (
	RemovalDeleted   Removal = "deleted"
	RemovalCancelled Removal = "cancelled"
)

// Service runs the booking lifecycle.
type Service interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*RentalDTO, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (*RentalDTO, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) (Removal, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*RentalDTO, error)
	ListBookings(ctx context.Context, input ListBookingsInput) (*pagination.Page[RentalDTO], error)
}

// CreateBookingInput holds the validated payload to book a product.
type CreateBookingInput struct {
	ProductID       uuid.UUID
	RegionID        uuid.UUID
	RentalPeriodID  uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	StartDate       types.Date
	Notes           *string
}

// UpdateBookingInput amends a booking. NotesSet distinguishes clearing the
// notes (Notes nil) from leaving them untouched.
type UpdateBookingInput struct {
	CustomerName    *string
	CustomerEmail   *string
	CustomerAddress *string
	Notes           *string
	NotesSet        bool
	Status          *enums.RentalStatus
	StartDate       *types.Date
}

type ListBookingsInput struct {
	Filter     ListFilter
	Pagination pagination.Params
}

type service struct {
	repo        *Repository
	pricingRepo *pricing.Repository
	dbClient    *db.Client
	location    *time.Location
	metrics     *metrics.BookingMetrics
	now         func() time.Time
}

// NewService constructs a booking service. loc is the calendar used to decide
// what today is; nil means UTC.
func NewService(repo *Repository, pricingRepo *pricing.Repository, dbClient *db.Client, loc *time.Location, bookingMetrics *metrics.BookingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rental repository required")
	}
	if pricingRepo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo:        repo,
		pricingRepo: pricingRepo,
		dbClient:    dbClient,
		location:    loc,
		metrics:     bookingMetrics,
		now:         time.Now,
	}, nil
}

func (s *service) today() types.Date {
	return types.Today(s.now(), s.location)
}

// CreateBooking validates the start date, resolves the active price and
// stores a confirmed rental at that price.
func (s *service) CreateBooking(ctx context.Context, input CreateBookingInput) (*RentalDTO, error) {
	rental, err := s.createBooking(ctx, input)
	if err != nil {
		s.metrics.IncRejected(string(codeOf(err)))
		return nil, err
	}
	if rental.Region != nil {
		s.metrics.IncCreated(rental.Region.Code)
	}
	return NewRentalDTO(rental), nil
}

func (s *service) createBooking(ctx context.Context, input CreateBookingInput) (*models.RentalTransaction, error) {
	if input.StartDate.IsZero() || input.StartDate.Before(s.today()) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidStartDate, startDateMsg).
			WithDetails(map[string]string{"start_date": startDateMsg})
	}

	var created *models.RentalTransaction
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindProduct(ctx, input.ProductID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if !product.IsActive {
			return pkgerrors.New(pkgerrors.CodeProductNotAvailable, productUnavailableMsg)
		}
		if err := ensureReferences(ctx, txRepo, input.RegionID, input.RentalPeriodID); err != nil {
			return err
		}

		price, err := pricing.Resolve(ctx, s.pricingRepo.WithTx(tx), product.ID, input.RegionID, input.RentalPeriodID)
		if err != nil {
			return err
		}

		row := &models.RentalTransaction{
			ProductID:       product.ID,
			RegionID:        input.RegionID,
			RentalPeriodID:  input.RentalPeriodID,
			CustomerName:    strings.TrimSpace(input.CustomerName),
			CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
			CustomerAddress: strings.TrimSpace(input.CustomerAddress),
			StartDate:       input.StartDate,
			EndDate:         input.StartDate.AddDays(price.RentalPeriod.Days),
			Price:           price.Price,
			Status:          enums.RentalStatusConfirmed,
			Notes:           input.Notes,
		}
		if err := txRepo.Create(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert rental")
		}

		created, err = txRepo.FindByID(ctx, row.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload rental")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rental")
		}
		return nil, err
	}
	return created, nil
}

// UpdateBooking amends contact details, notes, status and the start date.
// The price is never recomputed. A cancelled or completed booking keeps its
// status and dates.
func (s *service) UpdateBooking(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (*RentalDTO, error) {
	var updated *models.RentalTransaction
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		row, err := load(ctx, txRepo, id)
		if err != nil {
			return err
		}

		current := row.Status
		if input.Status != nil {
			if !current.CanTransitionTo(*input.Status) {
				return transitionError(row.Status, *input.Status)
			}
			row.Status = *input.Status
		}
		if input.StartDate != nil && !input.StartDate.Equal(row.StartDate) {
			if current.IsTerminal() {
				return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("Cannot change the start date of a %s rental.", current)).
					WithDetails(map[string]string{"start_date": "The rental can no longer be rescheduled."})
			}
			if row.RentalPeriod == nil {
				return pkgerrors.New(pkgerrors.CodeInternal, "rental period missing")
			}
			row.StartDate = *input.StartDate
			row.EndDate = input.StartDate.AddDays(row.RentalPeriod.Days)
		}
		if input.CustomerName != nil {
			row.CustomerName = strings.TrimSpace(*input.CustomerName)
		}
		if input.CustomerEmail != nil {
			row.CustomerEmail = strings.TrimSpace(*input.CustomerEmail)
		}
		if input.CustomerAddress != nil {
			row.CustomerAddress = strings.TrimSpace(*input.CustomerAddress)
		}
		if input.NotesSet {
			row.Notes = input.Notes
		}

		if err := txRepo.Update(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rental")
		}
		updated, err = txRepo.FindByID(ctx, row.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload rental")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rental")
		}
		return nil, err
	}
	return NewRentalDTO(updated), nil
}

// DeleteBooking hard-deletes a confirmed booking that has not started yet and
// cancels every other row, completed ones included. It bypasses the
// transition table used by UpdateBooking.
func (s *service) DeleteBooking(ctx context.Context, id uuid.UUID) (Removal, error) {
	today := s.today()
	var outcome Removal
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		row, err := load(ctx, txRepo, id)
		if err != nil {
			return err
		}

		if row.Status == enums.RentalStatusConfirmed && row.StartDate.After(today) {
			if err := txRepo.Delete(ctx, row.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete rental")
			}
			outcome = RemovalDeleted
			return nil
		}

		outcome = RemovalCancelled
		if row.Status == enums.RentalStatusCancelled {
			return nil
		}
		row.Status = enums.RentalStatusCancelled
		if err := txRepo.Update(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel rental")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete rental")
		}
		return "", err
	}
	s.metrics.IncRemoved(string(outcome))
	return outcome, nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*RentalDTO, error) {
	row, err := load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return NewRentalDTO(row), nil
}

func (s *service) ListBookings(ctx context.Context, input ListBookingsInput) (*pagination.Page[RentalDTO], error) {
	if input.Filter.Status != nil && !input.Filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"status": "The selected status is invalid."})
	}
	params := input.Pagination.Normalize()
	rows, total, err := s.repo.List(ctx, input.Filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rentals")
	}
	items := make([]RentalDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *NewRentalDTO(&rows[i]))
	}
	page := pagination.NewPage(items, params, total)
	return &page, nil
}

func load(ctx context.Context, repo *Repository, id uuid.UUID) (*models.RentalTransaction, error) {
	row, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rental")
	}
	return row, nil
}

func ensureReferences(ctx context.Context, repo *Repository, regionID, rentalPeriodID uuid.UUID) error {
	details := map[string]string{}
	ok, err := repo.RegionExists(ctx, regionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check region")
	}
	if !ok {
		details["region_id"] = "The selected region id is invalid."
	}
	ok, err = repo.RentalPeriodExists(ctx, rentalPeriodID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check rental period")
	}
	if !ok {
		details["rental_period_id"] = "The selected rental period id is invalid."
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func transitionError(from, to enums.RentalStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("Cannot change status from %s to %s.", from, to)).
		WithDetails(map[string]string{"status": fmt.Sprintf("The rental is %s.", from)})
}

func codeOf(err error) pkgerrors.Code {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code()
	}
	return pkgerrors.CodeInternal
}

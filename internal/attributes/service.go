package attributes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/rentalhub-backend/internal/guard"
	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/db/models"
	"github.com/angelmondragon/rentalhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/rentalhub-backend/pkg/errors"
)

const (
	attributeInUseMsg = "Cannot delete attribute that is in use by products."
	valueInUseMsg     = "Cannot delete attribute value that is in use by products."
	nameTakenMsg      = "The name has already been taken."
	valueTakenMsg     = "The value already exists for this attribute."
	invalidTypeMsg    = "The selected type is invalid."
	invalidAttrMsg    = "The selected attribute id is invalid."
)

// Service manages attributes and their allowed values.
type Service interface {
	List(ctx context.Context) ([]AttributeDTO, error)
	Create(ctx context.Context, input CreateAttributeInput) (*AttributeDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateAttributeInput) (*AttributeDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListValues(ctx context.Context, attributeID *uuid.UUID) ([]AttributeValueDTO, error)
	CreateValue(ctx context.Context, input CreateValueInput) (*AttributeValueDTO, error)
	UpdateValue(ctx context.Context, id uuid.UUID, input UpdateValueInput) (*AttributeValueDTO, error)
	DeleteValue(ctx context.Context, id uuid.UUID) error
}

type CreateAttributeInput struct {
	Name         string
	Type         string
	IsFilterable *bool
	IsRequired   *bool
}

type UpdateAttributeInput struct {
	Name         *string
	Type         *string
	IsFilterable *bool
	IsRequired   *bool
}

type CreateValueInput struct {
	AttributeID uuid.UUID
	Value       string
}

type UpdateValueInput struct {
	Value *string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("attribute repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) List(ctx context.Context) ([]AttributeDTO, error) {
	rows, err := s.repo.ListWithValues(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list attributes")
	}
	out := make([]AttributeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewAttributeDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateAttributeInput) (*AttributeDTO, error) {
	attrType, err := parseType(input.Type)
	if err != nil {
		return nil, err
	}
	attr := &models.Attribute{
		Name: strings.TrimSpace(input.Name),
		Type: attrType,
	}
	if input.IsFilterable != nil {
		attr.IsFilterable = *input.IsFilterable
	}
	if input.IsRequired != nil {
		attr.IsRequired = *input.IsRequired
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := ensureNameFree(ctx, txRepo, attr.Name, uuid.Nil); err != nil {
			return err
		}
		return txRepo.Create(ctx, attr)
	}); err != nil {
		return nil, mapWriteError(err, "insert attribute", duplicateName)
	}
	return NewAttributeDTO(attr), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateAttributeInput) (*AttributeDTO, error) {
	var attrType *enums.AttributeType
	if input.Type != nil {
		parsed, err := parseType(*input.Type)
		if err != nil {
			return nil, err
		}
		attrType = &parsed
	}

	var updated *models.Attribute
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		attr, err := loadAttribute(ctx, txRepo, id)
		if err != nil {
			return err
		}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name != attr.Name {
				if err := ensureNameFree(ctx, txRepo, name, attr.ID); err != nil {
					return err
				}
			}
			attr.Name = name
		}
		if attrType != nil {
			attr.Type = *attrType
		}
		if input.IsFilterable != nil {
			attr.IsFilterable = *input.IsFilterable
		}
		if input.IsRequired != nil {
			attr.IsRequired = *input.IsRequired
		}
		if err := txRepo.Update(ctx, attr); err != nil {
			return err
		}
		updated = attr
		return nil
	}); err != nil {
		return nil, mapWriteError(err, "update attribute", duplicateName)
	}
	return NewAttributeDTO(updated), nil
}

// Delete removes the attribute together with its values, atomically.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := loadAttribute(ctx, txRepo, id); err != nil {
			return err
		}
		return guard.GuardedDelete(ctx, txRepo, id, attributeInUseMsg, func(ctx context.Context) error {
			return txRepo.DeleteWithValues(ctx, id)
		})
	})
	if err != nil && pkgerrors.As(err) == nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete attribute")
	}
	return err
}

func (s *service) ListValues(ctx context.Context, attributeID *uuid.UUID) ([]AttributeValueDTO, error) {
	rows, err := s.repo.ListValues(ctx, attributeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list attribute values")
	}
	out := make([]AttributeValueDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewAttributeValueDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) CreateValue(ctx context.Context, input CreateValueInput) (*AttributeValueDTO, error) {
	value := &models.AttributeValue{
		AttributeID: input.AttributeID,
		Value:       strings.TrimSpace(input.Value),
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		attr, err := txRepo.FindByID(ctx, input.AttributeID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"attribute_id": invalidAttrMsg})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attribute")
		}
		if err := ensureValueFree(ctx, txRepo, value.AttributeID, value.Value, uuid.Nil); err != nil {
			return err
		}
		if err := txRepo.CreateValue(ctx, value); err != nil {
			return err
		}
		value.Attribute = attr
		return nil
	}); err != nil {
		return nil, mapWriteError(err, "insert attribute value", duplicateValue)
	}
	return NewAttributeValueDTO(value), nil
}

func (s *service) UpdateValue(ctx context.Context, id uuid.UUID, input UpdateValueInput) (*AttributeValueDTO, error) {
	var updated *models.AttributeValue
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		value, err := loadValue(ctx, txRepo, id)
		if err != nil {
			return err
		}
		if input.Value != nil {
			next := strings.TrimSpace(*input.Value)
			if err := ensureValueFree(ctx, txRepo, value.AttributeID, next, value.ID); err != nil {
				return err
			}
			value.Value = next
		}
		if err := txRepo.UpdateValue(ctx, value); err != nil {
			return err
		}
		updated = value
		return nil
	}); err != nil {
		return nil, mapWriteError(err, "update attribute value", duplicateValue)
	}
	return NewAttributeValueDTO(updated), nil
}

func (s *service) DeleteValue(ctx context.Context, id uuid.UUID) error {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := loadValue(ctx, txRepo, id); err != nil {
			return err
		}
		probe := guard.ProbeFunc(txRepo.ValueHasDependents)
		return guard.GuardedDelete(ctx, probe, id, valueInUseMsg, func(ctx context.Context) error {
			return txRepo.DeleteValue(ctx, id)
		})
	})
	if err != nil && pkgerrors.As(err) == nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete attribute value")
	}
	return err
}

func loadAttribute(ctx context.Context, repo *Repository, id uuid.UUID) (*models.Attribute, error) {
	attr, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attribute not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attribute")
	}
	return attr, nil
}

func loadValue(ctx context.Context, repo *Repository, id uuid.UUID) (*models.AttributeValue, error) {
	value, err := repo.FindValueByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attribute value not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attribute value")
	}
	return value, nil
}

func parseType(raw string) (enums.AttributeType, error) {
	attrType, err := enums.ParseAttributeType(strings.TrimSpace(raw))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").WithDetails(map[string]string{"type": invalidTypeMsg})
	}
	return attrType, nil
}

func ensureNameFree(ctx context.Context, repo *Repository, name string, excludeID uuid.UUID) error {
	taken, err := repo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check attribute name")
	}
	if taken {
		return duplicateName()
	}
	return nil
}

func ensureValueFree(ctx context.Context, repo *Repository, attributeID uuid.UUID, value string, excludeID uuid.UUID) error {
	taken, err := repo.ValueTaken(ctx, attributeID, value, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check attribute value")
	}
	if taken {
		return duplicateValue()
	}
	return nil
}

func duplicateName() error {
	return pkgerrors.New(pkgerrors.CodeDuplicateValue, nameTakenMsg).WithDetails(map[string]string{"name": nameTakenMsg})
}

func duplicateValue() error {
	return pkgerrors.New(pkgerrors.CodeDuplicateValue, valueTakenMsg).WithDetails(map[string]string{"value": valueTakenMsg})
}

func mapWriteError(err error, step string, onDuplicate func() error) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsUniqueViolation(err, "") {
		return onDuplicate()
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}

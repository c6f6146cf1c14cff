package services

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/data/aggregates"
	"github.com/yungbote/people-backend/internal/data/repos/person"
	domainagg "github.com/yungbote/people-backend/internal/domain/aggregates"
	"github.com/yungbote/people-backend/internal/domain/people"
	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/dbctx"
	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/platform/storage"
)

const (
	photoCategory = "individuals"
	logoCategory  = "legal_entities"
)

type ContactInput struct {
	Email   string
	Phone   string
	Address people.AddressParts
}

type CreateIndividualInput struct {
	FullName  string
	Cpf       string
	BirthDate time.Time
	Gender    string
	ContactInput
}

type CreateLegalEntityInput struct {
	CorporateName           string
	TradeName               string
	Cnpj                    string
	StateRegistration       *string
	MunicipalRegistration   *string
	LegalRepresentativeName string
	LegalRepresentativeCpf  string
	ContactInput
}

type PeopleService interface {
	CreateIndividual(ctx context.Context, in CreateIndividualInput) (*people.Individual, error)
	CreateLegalEntity(ctx context.Context, in CreateLegalEntityInput) (*people.LegalEntity, error)
	GetByID(ctx context.Context, id uuid.UUID) (people.Person, bool, error)
	SearchByName(ctx context.Context, query string, limit int) ([]people.Person, error)
	AttachPhoto(ctx context.Context, id uuid.UUID, content io.Reader, filename string) (string, error)
	AttachLogo(ctx context.Context, id uuid.UUID, content io.Reader, filename string) (string, error)
}

type peopleService struct {
	db      *gorm.DB
	log     *logger.Logger
	deps    aggregates.BaseDeps
	read    person.ReadRepo
	storage storage.Service
	audit   AuditService
	metrics *observability.Metrics
}

func NewPeopleService(
	db *gorm.DB,
	log *logger.Logger,
	deps aggregates.BaseDeps,
	read person.ReadRepo,
	storageSvc storage.Service,
	audit AuditService,
	metrics *observability.Metrics,
) PeopleService {
	if audit == nil {
		audit = noopAudit{}
	}
	return &peopleService{
		db:      db,
		log:     log.With("service", "PeopleService"),
		deps:    deps,
		read:    read,
		storage: storageSvc,
		audit:   audit,
		metrics: metrics,
	}
}

// begin opens the unit of work owned by a single request.
func (s *peopleService) begin(op string) (*aggregates.UnitOfWork, person.WriteRepo) {
	uow := aggregates.NewUnitOfWork(s.deps, op)
	return uow, person.NewWriteRepo(s.db, s.log, uow)
}

func buildContact(in ContactInput) (people.EmailAddress, people.PhoneNumber, people.Address, error) {
	email, err := people.NewEmailAddress(in.Email)
	if err != nil {
		return people.EmailAddress{}, people.PhoneNumber{}, people.Address{}, err
	}
	phone, err := people.NewPhoneNumber(in.Phone)
	if err != nil {
		return people.EmailAddress{}, people.PhoneNumber{}, people.Address{}, err
	}
	addr, err := people.NewAddress(in.Address)
	if err != nil {
		return people.EmailAddress{}, people.PhoneNumber{}, people.Address{}, err
	}
	return email, phone, addr, nil
}

func (s *peopleService) CreateIndividual(ctx context.Context, in CreateIndividualInput) (*people.Individual, error) {
	cpf, err := people.NewCpf(in.Cpf)
	if err != nil {
		return nil, err
	}
	gender, err := people.ParseGender(in.Gender)
	if err != nil {
		return nil, err
	}
	email, phone, addr, err := buildContact(in.ContactInput)
	if err != nil {
		return nil, err
	}
	ind, err := people.NewIndividual(people.IndividualParams{
		FullName:  in.FullName,
		Cpf:       cpf,
		BirthDate: in.BirthDate,
		Gender:    gender,
		Email:     email,
		Phone:     phone,
		Address:   addr,
	})
	if err != nil {
		return nil, err
	}

	uow, write := s.begin("people.create_individual")
	write.AddIndividual(ind)
	if _, err := uow.Commit(ctx); err != nil {
		if domainagg.IsCode(err, domainagg.CodeConflict) {
			return nil, domainagg.Conflict("people.create_individual", "cpf", "an individual with this cpf already exists", err)
		}
		return nil, err
	}

	s.metrics.IncPersonCreated(string(people.KindIndividual))
	id := ind.ID()
	s.audit.Record(ctx, AuditPersonCreated, AuditEntityIndividual, &id, nil)
	return ind, nil
}

func (s *peopleService) CreateLegalEntity(ctx context.Context, in CreateLegalEntityInput) (*people.LegalEntity, error) {
	cnpj, err := people.NewCnpj(in.Cnpj)
	if err != nil {
		return nil, err
	}
	repCpf, err := people.NewCpf(in.LegalRepresentativeCpf)
	if err != nil {
		return nil, people.WithField(err, "legal_representative_cpf")
	}
	email, phone, addr, err := buildContact(in.ContactInput)
	if err != nil {
		return nil, err
	}
	le, err := people.NewLegalEntity(people.LegalEntityParams{
		CorporateName:           in.CorporateName,
		TradeName:               in.TradeName,
		Cnpj:                    cnpj,
		StateRegistration:       in.StateRegistration,
		MunicipalRegistration:   in.MunicipalRegistration,
		LegalRepresentativeName: in.LegalRepresentativeName,
		LegalRepresentativeCpf:  repCpf,
		Email:                   email,
		Phone:                   phone,
		Address:                 addr,
	})
	if err != nil {
		return nil, err
	}

	uow, write := s.begin("people.create_legal_entity")
	write.AddLegalEntity(le)
	if _, err := uow.Commit(ctx); err != nil {
		if domainagg.IsCode(err, domainagg.CodeConflict) {
			return nil, domainagg.Conflict("people.create_legal_entity", "cnpj", "a legal entity with this cnpj already exists", err)
		}
		return nil, err
	}

	s.metrics.IncPersonCreated(string(people.KindLegalEntity))
	id := le.ID()
	s.audit.Record(ctx, AuditPersonCreated, AuditEntityLegalEntity, &id, nil)
	return le, nil
}

func (s *peopleService) GetByID(ctx context.Context, id uuid.UUID) (people.Person, bool, error) {
	return s.read.GetByID(dbctx.Context{Ctx: ctx}, id)
}

func (s *peopleService) SearchByName(ctx context.Context, query string, limit int) ([]people.Person, error) {
	if strings.TrimSpace(query) == "" {
		return []people.Person{}, nil
	}
	return s.read.SearchByName(dbctx.Context{Ctx: ctx}, query, limit)
}

func (s *peopleService) AttachPhoto(ctx context.Context, id uuid.UUID, content io.Reader, filename string) (string, error) {
	return s.attach(ctx, attachment{
		op:         "people.attach_photo",
		category:   photoCategory,
		entityType: AuditEntityIndividual,
		action:     AuditPhotoAttached,
		missing:    "individual not found",
		update: func(write person.WriteRepo, dbc dbctx.Context, p *string) (bool, error) {
			return write.UpdateIndividualPhoto(dbc, id, p)
		},
	}, id, content, filename)
}

func (s *peopleService) AttachLogo(ctx context.Context, id uuid.UUID, content io.Reader, filename string) (string, error) {
	return s.attach(ctx, attachment{
		op:         "people.attach_logo",
		category:   logoCategory,
		entityType: AuditEntityLegalEntity,
		action:     AuditLogoAttached,
		missing:    "legal entity not found",
		update: func(write person.WriteRepo, dbc dbctx.Context, p *string) (bool, error) {
			return write.UpdateLegalEntityLogo(dbc, id, p)
		},
	}, id, content, filename)
}

type attachment struct {
	op         string
	category   string
	entityType string
	action     string
	missing    string
	update     func(write person.WriteRepo, dbc dbctx.Context, p *string) (bool, error)
}

// attach stores the file first, so a rejected upload fails the same way
// whether or not the target exists. The stored file is removed again when
// the target is missing or the commit fails.
func (s *peopleService) attach(ctx context.Context, a attachment, id uuid.UUID, content io.Reader, filename string) (string, error) {
	stored, err := s.storage.Save(ctx, content, path.Ext(filename), a.category, strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if err != nil {
		outcome := "error"
		if storage.IsRejected(err) {
			outcome = "rejected"
		}
		s.metrics.IncStorageSave(a.category, outcome)
		return "", err
	}
	s.metrics.IncStorageSave(a.category, "stored")

	uow, write := s.begin(a.op)
	found, err := a.update(write, dbctx.Context{Ctx: ctx}, &stored)
	if err == nil && !found {
		err = domainagg.NotFound(a.op, a.missing)
	}
	if err == nil {
		_, err = uow.Commit(ctx)
	}
	if err != nil {
		s.removeOrphan(ctx, stored)
		return "", err
	}

	s.audit.Record(ctx, a.action, a.entityType, &id, map[string]any{"path": stored})
	return stored, nil
}

func (s *peopleService) removeOrphan(ctx context.Context, stored string) {
	if err := s.storage.Delete(context.WithoutCancel(ctx), stored); err != nil {
		s.log.Warn("failed to remove orphaned upload", "path", stored, "error", err)
	}
}

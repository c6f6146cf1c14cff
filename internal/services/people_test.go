package services_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/data/aggregates"
	"github.com/yungbote/people-backend/internal/data/repos/audit"
	"github.com/yungbote/people-backend/internal/data/repos/person"
	"github.com/yungbote/people-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/people-backend/internal/domain/aggregates"
	"github.com/yungbote/people-backend/internal/domain/people"
	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/ctxutil"
	"github.com/yungbote/people-backend/internal/platform/dbctx"
	"github.com/yungbote/people-backend/internal/platform/storage"
	"github.com/yungbote/people-backend/internal/services"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

type fixture struct {
	db    *gorm.DB
	root  string
	svc   services.PeopleService
	audit audit.Repo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	root := t.TempDir()
	backend, err := storage.NewLocalBackend(root)
	require.NoError(t, err)
	store := storage.NewService(log, backend, storage.Policy{})
	auditRepo := audit.NewRepo(db, log)
	metrics := observability.NewMetrics()

	svc := services.NewPeopleService(
		db,
		log,
		aggregates.BaseDeps{DB: db, Log: log, Hooks: aggregates.NewObservabilityHooks(metrics)},
		person.NewReadRepo(db, log),
		store,
		services.NewAuditService(log, auditRepo),
		metrics,
	)
	return fixture{db: db, root: root, svc: svc, audit: auditRepo}
}

func mariaInput() services.CreateIndividualInput {
	return services.CreateIndividualInput{
		FullName:  "Maria Silva",
		Cpf:       "111.444.777-35",
		BirthDate: time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC),
		Gender:    "Female",
		ContactInput: services.ContactInput{
			Email: "maria@example.com",
			Phone: "(11) 91234-5678",
			Address: people.AddressParts{
				Street: "Rua A", Number: "1", District: "Centro",
				City: "São Paulo", State: "SP", Zip: "01001-000", Country: "Brasil",
			},
		},
	}
}

func acmeInput() services.CreateLegalEntityInput {
	return services.CreateLegalEntityInput{
		CorporateName:           "Acme Comércio LTDA",
		TradeName:               "Acme",
		Cnpj:                    "11.222.333/0001-81",
		LegalRepresentativeName: "Maria Silva",
		LegalRepresentativeCpf:  "11144477735",
		ContactInput:            mariaInput().ContactInput,
	}
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(root, func(_ string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return err
	})
	require.NoError(t, err)
	return n
}

func TestPeopleService_CreateIndividualAndFetch(t *testing.T) {
	f := newFixture(t)
	ctx := ctxutil.WithRequestMeta(context.Background(), &ctxutil.RequestMeta{RequestID: "req-create-1"})

	ind, err := f.svc.CreateIndividual(ctx, mariaInput())
	require.NoError(t, err)
	assert.Equal(t, "11144477735", ind.Cpf().String())
	assert.Equal(t, people.GenderFemale, ind.Gender())
	assert.False(t, ind.CreatedAt().IsZero())

	got, found, err := f.svc.GetByID(ctx, ind.ID())
	require.NoError(t, err)
	require.True(t, found)
	gotInd, ok := got.(*people.Individual)
	require.True(t, ok)
	assert.Equal(t, "11144477735", gotInd.Cpf().String())
	assert.Nil(t, gotInd.PhotoPath())

	events, err := f.audit.ListByEntity(dbctx.Context{Ctx: ctx}, ind.ID())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, services.AuditPersonCreated, events[0].Action)
	assert.Contains(t, string(events[0].Extra), "req-create-1")
}

func TestPeopleService_InvalidCpfStagesNothing(t *testing.T) {
	f := newFixture(t)
	in := mariaInput()
	in.Cpf = "111.444.777-36"

	_, err := f.svc.CreateIndividual(context.Background(), in)
	vErr, ok := people.AsValidationError(err)
	require.True(t, ok, "want validation error, got %v", err)
	assert.Equal(t, "cpf", vErr.Field)

	var count int64
	require.NoError(t, f.db.Model(&person.IndividualRow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPeopleService_DuplicateCpfConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateIndividual(ctx, mariaInput())
	require.NoError(t, err)
	_, err = f.svc.CreateIndividual(ctx, mariaInput())
	assert.True(t, domainagg.IsCode(err, domainagg.CodeConflict), "want conflict, got %v", err)
	assert.Equal(t, "cpf", domainagg.FieldOf(err))

	var count int64
	require.NoError(t, f.db.Model(&person.IndividualRow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPeopleService_LegalEntityRepresentativeCpfField(t *testing.T) {
	f := newFixture(t)
	in := acmeInput()
	in.LegalRepresentativeCpf = "00000000000"

	_, err := f.svc.CreateLegalEntity(context.Background(), in)
	vErr, ok := people.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "legal_representative_cpf", vErr.Field)
}

func TestPeopleService_AttachPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ind, err := f.svc.CreateIndividual(ctx, mariaInput())
	require.NoError(t, err)

	stored, err := f.svc.AttachPhoto(ctx, ind.ID(), bytes.NewReader(pngHeader), "Foto Perfil.PNG")
	require.NoError(t, err)
	assert.Regexp(t, `^individuals/foto-perfil-[0-9a-f]{32}\.png$`, stored)

	got, _, err := f.svc.GetByID(ctx, ind.ID())
	require.NoError(t, err)
	photo := got.(*people.Individual).PhotoPath()
	require.NotNil(t, photo)
	assert.Equal(t, stored, *photo)

	onDisk, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(stored)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, onDisk)
}

func TestPeopleService_AttachPhotoMissingRemovesOrphan(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AttachPhoto(context.Background(), uuid.New(), bytes.NewReader(pngHeader), "a.png")
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "want not found, got %v", err)
	assert.Zero(t, countFiles(t, f.root))
}

func TestPeopleService_AttachLogoToIndividualIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ind, err := f.svc.CreateIndividual(ctx, mariaInput())
	require.NoError(t, err)

	_, err = f.svc.AttachLogo(ctx, ind.ID(), bytes.NewReader(pngHeader), "logo.png")
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))
}

func TestPeopleService_GifRejectedRegardlessOfTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	le, err := f.svc.CreateLegalEntity(ctx, acmeInput())
	require.NoError(t, err)

	for _, id := range []uuid.UUID{le.ID(), uuid.New()} {
		_, err := f.svc.AttachLogo(ctx, id, bytes.NewReader([]byte("GIF89a")), "logo.gif")
		assert.Equal(t, storage.CodeExtensionNotAllowed, storage.CodeOf(err))
	}
	assert.Zero(t, countFiles(t, f.root))
}

func TestPeopleService_SearchByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.CreateIndividual(ctx, mariaInput())
	require.NoError(t, err)
	_, err = f.svc.CreateLegalEntity(ctx, acmeInput())
	require.NoError(t, err)

	got, err := f.svc.SearchByName(ctx, "acme", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].DisplayName())

	got, err = f.svc.SearchByName(ctx, "  ", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSeedDemoData_OnlyWhenEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, services.SeedDemoData(ctx, f.db, testutil.Logger(t), f.svc))
	require.NoError(t, services.SeedDemoData(ctx, f.db, testutil.Logger(t), f.svc))

	var individuals, entities int64
	require.NoError(t, f.db.Model(&person.IndividualRow{}).Count(&individuals).Error)
	require.NoError(t, f.db.Model(&person.LegalEntityRow{}).Count(&entities).Error)
	assert.EqualValues(t, 1, individuals)
	assert.EqualValues(t, 1, entities)
}

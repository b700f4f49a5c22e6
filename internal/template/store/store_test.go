package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

var templateColumns = []string{
	"id", "org_id", "doc_type", "jurisdiction", "deal_type", "version", "template_engine",
	"source_html", "source_docx_key", "required_fields_json",
	"effective_from", "effective_to", "default_for_org", "is_default", "created_at", "deleted_at",
}

func TestStore_ListCandidates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orgID := uuid.New()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deleted := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(templateColumns).
		AddRow(uuid.NewString(), nil, "BUYERS_ORDER", "TX", "FINANCE", 1, "HTML",
			"<p>{{ deal.dealNumber }}</p>", "", []byte(`{"requiredPaths":["vehicle.vin"]}`),
			from, nil, false, true, from, nil).
		AddRow(uuid.NewString(), orgID.String(), "BUYERS_ORDER", "TX", "FINANCE", 2, "DOCX",
			"", "templates/bo.docx", nil,
			from, nil, true, false, from, deleted)

	mock.ExpectQuery(`SELECT (.+) FROM document_templates WHERE doc_type = \$1 AND jurisdiction = \$2 AND deal_type = \$3`).
		WithArgs("BUYERS_ORDER", "TX", "FINANCE", orgID).
		WillReturnRows(rows)

	got, err := New(db).ListCandidates(context.Background(), orgID, "BUYERS_ORDER", "TX", deal.TypeFinance)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Nil(t, got[0].OrgID)
	assert.Equal(t, template.EngineHTML, got[0].Engine)
	assert.Equal(t, []string{"vehicle.vin"}, got[0].RequiredFields.RequiredPaths)
	assert.True(t, got[0].IsDefault)

	assert.Equal(t, template.EngineDOCX, got[1].Engine)
	assert.Equal(t, "templates/bo.docx", got[1].SourceDocxKey)
	assert.True(t, got[1].IsDeleted())
	assert.Empty(t, got[1].RequiredFields.RequiredPaths)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListTemplatesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orgID := uuid.New()
	docType := "BUYERS_ORDER"

	mock.ExpectQuery(`FROM document_templates WHERE \(org_id = \$1 OR org_id IS NULL\) AND deleted_at IS NULL AND doc_type = \$2 ORDER BY`).
		WithArgs(orgID, docType).
		WillReturnRows(sqlmock.NewRows(templateColumns))

	got, err := New(db).ListTemplates(context.Background(), orgID, template.ListFilter{DocType: &docType, IncludeGlobal: true})
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WriteTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orgID := uuid.New()
	sc := template.Scope{OrgID: &orgID, Jurisdiction: "TX", DocType: "BUYERS_ORDER", DealType: deal.TypeFinance}
	newID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs(scopeLockKey(sc)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE document_templates SET default_for_org = FALSE WHERE default_for_org AND org_id IS NOT DISTINCT FROM \$1`).
		WithArgs(orgID, "TX", "BUYERS_ORDER", "FINANCE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO document_templates`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(newID.String(), time.Now()))
	mock.ExpectCommit()

	wtx, err := New(db).BeginWrite(context.Background(), sc)
	require.NoError(t, err)

	require.NoError(t, wtx.ClearDefaults(context.Background(), sc))

	tpl := &template.Template{
		OrgID: &orgID, DocType: "BUYERS_ORDER", Jurisdiction: "TX", DealType: deal.TypeFinance,
		Version: 1, Engine: template.EngineHTML, SourceHTML: "<p></p>", DefaultForOrg: true,
		EffectiveFrom: time.Now(),
	}
	require.NoError(t, wtx.InsertTemplate(context.Background(), tpl))
	assert.Equal(t, newID, tpl.ID)

	require.NoError(t, wtx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

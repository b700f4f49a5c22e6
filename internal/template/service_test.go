package template_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/template"
)

func TestService_Resolve(t *testing.T) {
	orgID := uuid.New()
	global := buyersOrder(nil, 1, date(2024, 1, 1))
	org := buyersOrder(&orgID, 2, date(2025, 1, 1))

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := template.NewMockRepository(ctrl)
	repo.EXPECT().ListCandidates(gomock.Any(), orgID, "BUYERS_ORDER", "TX", deal.TypeFinance).
		Return([]*template.Template{global, org}, nil)
	repo.EXPECT().ListCandidates(gomock.Any(), orgID, "GAP_WAIVER", "TX", deal.TypeFinance).
		Return(nil, nil)

	svc := template.NewService(repo)

	got, ok, err := svc.Resolve(context.Background(), template.Query{
		OrgID: orgID, DocType: "buyers_order", Jurisdiction: "TX", DealType: deal.TypeFinance, AsOf: date(2025, 6, 1),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, org.ID, got.ID)

	_, ok, err = svc.Resolve(context.Background(), template.Query{
		OrgID: orgID, DocType: "GAP_WAIVER", Jurisdiction: "TX", DealType: deal.TypeFinance, AsOf: date(2025, 6, 1),
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Create(t *testing.T) {
	p := auth.Principal{OrgID: uuid.New(), ActorID: uuid.New()}

	base := template.CreateParams{
		DocType:       "buyers_order",
		Jurisdiction:  "tx",
		DealType:      deal.TypeFinance,
		Engine:        template.EngineHTML,
		SourceHTML:    "<p>{{ deal.dealNumber }}</p>",
		EffectiveFrom: date(2025, 1, 1),
	}

	type testCase struct {
		name        string
		params      func() template.CreateParams
		setupMock   func(m *template.MockRepository, tx *template.MockWriteTx)
		wantVersion int
		wantErr     error
	}

	tests := []testCase{
		{
			name:   "NextVersion",
			params: func() template.CreateParams { return base },
			setupMock: func(m *template.MockRepository, tx *template.MockWriteTx) {
				m.EXPECT().BeginWrite(gomock.Any(), template.Scope{OrgID: &p.OrgID, Jurisdiction: "TX", DocType: "BUYERS_ORDER", DealType: deal.TypeFinance}).Return(tx, nil)
				tx.EXPECT().LatestVersion(gomock.Any(), gomock.Any()).Return(2, nil)
				tx.EXPECT().InsertTemplate(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantVersion: 3,
		},
		{
			name: "DefaultClearsSiblingsFirst",
			params: func() template.CreateParams {
				p := base
				p.DefaultForOrg = true

				return p
			},
			setupMock: func(m *template.MockRepository, tx *template.MockWriteTx) {
				m.EXPECT().BeginWrite(gomock.Any(), gomock.Any()).Return(tx, nil)
				tx.EXPECT().LatestVersion(gomock.Any(), gomock.Any()).Return(0, nil)
				gomock.InOrder(
					tx.EXPECT().ClearDefaults(gomock.Any(), gomock.Any()).Return(nil),
					tx.EXPECT().InsertTemplate(gomock.Any(), gomock.Any()).Return(nil),
				)
				tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantVersion: 1,
		},
		{
			name: "DocxWithoutKey",
			params: func() template.CreateParams {
				p := base
				p.Engine = template.EngineDOCX

				return p
			},
			setupMock: func(m *template.MockRepository, tx *template.MockWriteTx) {},
			wantErr:   template.ErrInvalidTemplate,
		},
		{
			name: "InvertedWindow",
			params: func() template.CreateParams {
				p := base
				p.EffectiveTo = new(date(2024, 1, 1))

				return p
			},
			setupMock: func(m *template.MockRepository, tx *template.MockWriteTx) {},
			wantErr:   template.ErrInvalidTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := template.NewMockRepository(ctrl)
			tx := template.NewMockWriteTx(ctrl)
			tt.setupMock(repo, tx)

			got, err := template.NewService(repo).Create(context.Background(), p, tt.params())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, got.Version)
			assert.Equal(t, "BUYERS_ORDER", got.DocType)
			require.NotNil(t, got.OrgID)
			assert.Equal(t, p.OrgID, *got.OrgID)
		})
	}
}

func TestService_SetDefault(t *testing.T) {
	p := auth.Principal{OrgID: uuid.New(), ActorID: uuid.New()}

	type testCase struct {
		name      string
		setupMock func(m *template.MockRepository, tx *template.MockWriteTx, tpl *template.Template)
		global    bool
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *template.MockRepository, tx *template.MockWriteTx, tpl *template.Template) {
				m.EXPECT().GetTemplate(gomock.Any(), p.OrgID, tpl.ID).Return(tpl, nil)
				m.EXPECT().BeginWrite(gomock.Any(), tpl.Scope()).Return(tx, nil)
				tx.EXPECT().GetTemplateForUpdate(gomock.Any(), tpl.ID).Return(tpl, nil)
				gomock.InOrder(
					tx.EXPECT().ClearDefaults(gomock.Any(), tpl.Scope()).Return(nil),
					tx.EXPECT().SetDefaultForOrg(gomock.Any(), tpl.ID).Return(nil),
				)
				tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Entry) error {
					assert.Equal(t, audit.ActionSetDefault, e.Action)
					assert.Equal(t, false, e.Before.(map[string]any)["defaultForOrg"])
					assert.Equal(t, true, e.After.(map[string]any)["defaultForOrg"])
					return nil
				})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name:   "GlobalReadOnly",
			global: true,
			setupMock: func(m *template.MockRepository, tx *template.MockWriteTx, tpl *template.Template) {
				m.EXPECT().GetTemplate(gomock.Any(), p.OrgID, tpl.ID).Return(tpl, nil)
			},
			wantErr: template.ErrGlobalReadOnly,
		},
		{
			name: "NotFound",
			setupMock: func(m *template.MockRepository, tx *template.MockWriteTx, tpl *template.Template) {
				m.EXPECT().GetTemplate(gomock.Any(), p.OrgID, tpl.ID).Return(nil, template.ErrNotFound)
			},
			wantErr: template.ErrNotFound,
		},
		{
			name: "CommitFails",
			setupMock: func(m *template.MockRepository, tx *template.MockWriteTx, tpl *template.Template) {
				m.EXPECT().GetTemplate(gomock.Any(), p.OrgID, tpl.ID).Return(tpl, nil)
				m.EXPECT().BeginWrite(gomock.Any(), gomock.Any()).Return(tx, nil)
				tx.EXPECT().GetTemplateForUpdate(gomock.Any(), tpl.ID).Return(tpl, nil)
				tx.EXPECT().ClearDefaults(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().SetDefaultForOrg(gomock.Any(), tpl.ID).Return(nil)
				tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(errors.New("serialization failure"))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errors.New("serialization failure"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var owner *uuid.UUID
			if !tt.global {
				owner = &p.OrgID
			}

			tpl := buyersOrder(owner, 1, date(2024, 1, 1))

			repo := template.NewMockRepository(ctrl)
			tx := template.NewMockWriteTx(ctrl)
			tt.setupMock(repo, tx, tpl)

			got, err := template.NewService(repo).SetDefault(context.Background(), p, tpl.ID)
			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(tt.wantErr, template.ErrGlobalReadOnly) || errors.Is(tt.wantErr, template.ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.True(t, got.DefaultForOrg)
		})
	}
}

func TestService_Delete(t *testing.T) {
	p := auth.Principal{OrgID: uuid.New(), ActorID: uuid.New()}
	tpl := buyersOrder(&p.OrgID, 1, date(2024, 1, 1))
	tpl.DefaultForOrg = true

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := template.NewMockRepository(ctrl)
	tx := template.NewMockWriteTx(ctrl)

	repo.EXPECT().GetTemplate(gomock.Any(), p.OrgID, tpl.ID).Return(tpl, nil)
	repo.EXPECT().BeginWrite(gomock.Any(), tpl.Scope()).Return(tx, nil)
	tx.EXPECT().GetTemplateForUpdate(gomock.Any(), tpl.ID).Return(tpl, nil)
	tx.EXPECT().SoftDelete(gomock.Any(), tpl.ID).Return(nil)
	tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Entry) error {
		assert.Equal(t, audit.ActionDelete, e.Action)
		assert.Equal(t, true, e.After.(map[string]any)["deleted"])
		return nil
	})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	require.NoError(t, template.NewService(repo).Delete(context.Background(), p, tpl.ID))
	assert.True(t, tpl.IsDeleted())
	assert.False(t, tpl.DefaultForOrg)
}

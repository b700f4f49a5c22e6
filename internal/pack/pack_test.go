package pack_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dealdesk/internal/audit"
	"github.com/MrJamesThe3rd/dealdesk/internal/auth"
	"github.com/MrJamesThe3rd/dealdesk/internal/pack"
)

func TestParseDefinition(t *testing.T) {
	src := []byte(`
name: Texas finance
description: Standard retail finance jacket
items:
  - docType: buyers_order
    required: true
    position: 1
  - docType: GAP_WAIVER
    position: 5
`)

	got, err := pack.ParseDefinition(src)
	require.NoError(t, err)

	assert.Equal(t, "Texas finance", got.Name)
	require.Len(t, got.Items, 2)
	assert.True(t, got.Items[0].Required)
	assert.False(t, got.Items[1].Required)
	assert.Equal(t, 5, got.Items[1].Position)
}

func TestParseDefinition_Invalid(t *testing.T) {
	tests := map[string]string{
		"NoName":    "items: [{docType: A}]",
		"NoItems":   "name: x",
		"Duplicate": "name: x\nitems: [{docType: a}, {docType: A}]",
		"BlankType": "name: x\nitems: [{docType: ' '}]",
		"Malformed": "name: [",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := pack.ParseDefinition([]byte(src))
			assert.ErrorIs(t, err, pack.ErrInvalidPack)
		})
	}
}

func TestPack_Ordered(t *testing.T) {
	pk := &pack.Pack{Items: []pack.Item{
		{DocType: "C", Position: 2},
		{DocType: "B", Position: 1},
		{DocType: "A", Position: 2},
	}}

	got := pk.Ordered()

	assert.Equal(t, []string{"B", "A", "C"}, []string{got[0].DocType, got[1].DocType, got[2].DocType})
	assert.Equal(t, "C", pk.Items[0].DocType, "Ordered must not reorder the pack itself")
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := pack.NewMockRepository(ctrl)
	tx := pack.NewMockPackTx(ctrl)

	p := auth.Principal{OrgID: uuid.New(), ActorID: uuid.New()}
	newID := uuid.New()

	gomock.InOrder(
		repo.EXPECT().BeginPack(gomock.Any()).Return(tx, nil),
		tx.EXPECT().InsertPack(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pk *pack.Pack) error {
			pk.ID = newID
			return nil
		}),
		tx.EXPECT().RecordAudit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Entry) error {
			assert.Equal(t, audit.EntityPack, e.EntityType)
			assert.Equal(t, newID, e.EntityID)
			assert.Equal(t, audit.ActionCreate, e.Action)
			return nil
		}),
		tx.EXPECT().Commit().Return(nil),
		tx.EXPECT().Rollback().Return(nil),
	)

	got, err := pack.NewService(repo).Create(context.Background(), p, pack.CreateParams{
		Name:  " Cash jacket ",
		Items: []pack.Item{{DocType: "buyers_order", Required: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, newID, got.ID)
	assert.Equal(t, p.OrgID, got.OrgID)
	assert.Equal(t, "Cash jacket", got.Name)
	assert.Equal(t, "BUYERS_ORDER", got.Items[0].DocType)
}

func TestService_CreateRejectsInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := pack.NewService(pack.NewMockRepository(ctrl)).Create(context.Background(), auth.Principal{}, pack.CreateParams{Name: "x"})
	assert.ErrorIs(t, err, pack.ErrInvalidPack)
}

//go:build unit

package buyer_test

import (
	"testing"

	"rifa-hub/internal/domain/buyer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewContact(t *testing.T) {
	testCases := []struct {
		name         string
		buyerName    string
		whatsapp     string
		email        *string
		wantErr      error
		wantWhatsApp string
		wantEmail    *string
	}{
		{
			name:         "valid BR mobile with punctuation",
			buyerName:    "Maria Silva",
			whatsapp:     "+55 (11) 98765-4321",
			wantWhatsApp: "5511987654321",
		},
		{
			name:         "valid bare digits",
			buyerName:    "João",
			whatsapp:     "11987654321",
			wantWhatsApp: "11987654321",
		},
		{
			name:         "email normalized to lowercase",
			buyerName:    "Maria",
			whatsapp:     "11987654321",
			email:        strPtr("  Maria.Silva@Example.COM "),
			wantWhatsApp: "11987654321",
			wantEmail:    strPtr("maria.silva@example.com"),
		},
		{
			name:         "blank email treated as absent",
			buyerName:    "Maria",
			whatsapp:     "11987654321",
			email:        strPtr("   "),
			wantWhatsApp: "11987654321",
		},
		{name: "missing name", buyerName: "  ", whatsapp: "11987654321", wantErr: buyer.ErrNameRequired},
		{name: "missing whatsapp", buyerName: "Maria", whatsapp: "", wantErr: buyer.ErrContactRequired},
		{name: "whatsapp with no digits", buyerName: "Maria", whatsapp: "abc-def", wantErr: buyer.ErrContactRequired},
		{name: "whatsapp too short", buyerName: "Maria", whatsapp: "123456789", wantErr: buyer.ErrInvalidWhatsApp},
		{name: "whatsapp too long", buyerName: "Maria", whatsapp: "123456789012345", wantErr: buyer.ErrInvalidWhatsApp},
		{name: "email without at sign", buyerName: "Maria", whatsapp: "11987654321", email: strPtr("not-an-email"), wantErr: buyer.ErrInvalidEmail},
		{name: "email without domain dot", buyerName: "Maria", whatsapp: "11987654321", email: strPtr("a@b"), wantErr: buyer.ErrInvalidEmail},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			contact, err := buyer.NewContact(tc.buyerName, tc.whatsapp, tc.email)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantWhatsApp, contact.WhatsApp())
			if tc.wantEmail != nil {
				require.NotNil(t, contact.Email())
				assert.Equal(t, *tc.wantEmail, *contact.Email())
			} else {
				assert.Nil(t, contact.Email())
			}
		})
	}
}

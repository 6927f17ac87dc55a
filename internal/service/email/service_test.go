package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"annonsplats/internal/config"
	"annonsplats/internal/domain"
	"annonsplats/internal/pkg/i18n"
)

func TestTemplatesRender(t *testing.T) {
	require.NoError(t, i18n.Load())

	cfg := &config.Config{Domain: "annonsplats.test", FromEmail: "noreply@annonsplats.test", DefaultLocale: "en"}
	svc, err := NewService(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	s := svc.(*service)
	var body bytes.Buffer
	err = s.templates["application_received.html"].ExecuteTemplate(&body, "layout.html", map[string]string{
		"Title":         "New application",
		"Name":          "Karin",
		"ApplicantName": "Erik",
		"AdTitle":       "Snöskottning",
		"Link":          "https://annonsplats.test/protected/applications",
	})
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Erik applied to your ad <strong>Snöskottning</strong>")

	// Without an API key delivery is skipped.
	ctx := context.Background()
	assert.NoError(t, svc.SendApplicationStatusEmail(ctx, "erik@example.com", "Erik", "Snöskottning", domain.ApplicationAccepted))
	assert.NoError(t, svc.SendEmailVerification(ctx, "erik@example.com", "Erik", "abc123"))
}

package pdf

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<!DOCTYPE html>
<html><head><title>Reçu</title><style>body{font-size:12px}</style></head>
<body>
<h1>Garderie Management</h1>
<p>Reçu N° <strong>REC-20240514-1-abcdef</strong></p>
<table>
<tr><th>Description</th><th>Montant</th></tr>
<tr><td>Frais de garderie - Mensuel</td><td>300 000 FCFA</td></tr>
</table>
<hr>
<p>Enregistré par Awa</p>
</body></html>`

func TestNativeConverter(t *testing.T) {
	out, err := NewNativeConverter().Convert(context.Background(), []byte(sampleHTML))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestNativeConverterCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNativeConverter().Convert(ctx, []byte(sampleHTML))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWkhtmltopdfMissingBinary(t *testing.T) {
	conv := NewWkhtmltopdfConverter(filepath.Join(t.TempDir(), "missing-binary"))
	_, err := conv.Convert(context.Background(), []byte(sampleHTML))
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	c, err := New(EngineNative, "")
	require.NoError(t, err)
	assert.IsType(t, &NativeConverter{}, c)

	c, err = New(EngineWkhtmltopdf, "/usr/bin/wkhtmltopdf")
	require.NoError(t, err)
	assert.IsType(t, &WkhtmltopdfConverter{}, c)

	_, err = New("chrome", "")
	assert.Error(t, err)
}

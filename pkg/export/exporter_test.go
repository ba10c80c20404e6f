package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Student", "Gold"},
		Rows: []map[string]string{
			{"Student": "TIT-2024-001", "Gold": "3"},
			{"Student": "TIT-2024-002", "Gold": "1"},
		},
	}

	content, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Student,Gold\nTIT-2024-001,3\nTIT-2024-002,1\n", string(content))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Student", "Gold"},
		Rows:    []map[string]string{{"Student": "TIT-2024-001", "Gold": "3"}},
	}

	content, err := NewPDFExporter().Render(data, "Medal Standings")
	require.NoError(t, err)
	assert.True(t, len(content) > 0)
	assert.Equal(t, "%PDF", string(content[:4]))
}

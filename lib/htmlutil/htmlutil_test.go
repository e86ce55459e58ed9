package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	node, err := html.Parse(strings.NewReader(
		`<html><body><p>one <b>two</b></p><p>three</p></body></html>`,
	))
	require.NoError(t, err)
	require.Equal(t, "one twothree", GetText(node))
}

func TestTitle(t *testing.T) {
	title := Title(`<html><head><title> My Page </title></head><body></body></html>`)
	require.Equal(t, "My Page", title)
}

func TestTitleMissing(t *testing.T) {
	require.Equal(t, "", Title(`<html><body>no title here</body></html>`))
}

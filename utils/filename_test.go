package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilenamePart(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"1042":            "1042",
		" SO/24-25 #1042": "SO_24-25_1042",
		"../../etc":       "etc",
		"a  b":            "a_b",
		"***":             "",
	}
	for in, want := range cases {
		require.Equal(t, want, SanitizeFilenamePart(in), "input %q", in)
	}
}

func TestOrderFormFilename(t *testing.T) {
	t.Parallel()

	require.Equal(t, "order_1042.pdf", OrderFormFilename("1042", "pdf"))
	require.Equal(t, "order_1042.xlsx", OrderFormFilename("1042", ".XLSX"))
	require.Equal(t, "order.html", OrderFormFilename("", "html"))
}

func TestOrderFormPageFilename(t *testing.T) {
	t.Parallel()

	require.Equal(t, "order_7.png", OrderFormPageFilename("7", 1, 1, "png"))
	require.Equal(t, "order_7_page_2.png", OrderFormPageFilename("7", 2, 3, "png"))
	require.Equal(t, "order_page_1.jpg", OrderFormPageFilename("", 1, 2, "jpg"))
}

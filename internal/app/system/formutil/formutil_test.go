package formutil

import (
	"net/http/httptest"
	"testing"
)

func TestSetError_Escapes(t *testing.T) {
	var b Base
	b.SetError("<b>Nama</b> wajib diisi.")
	if string(b.Error) != "&lt;b&gt;Nama&lt;/b&gt; wajib diisi." {
		t.Errorf("Error = %q", b.Error)
	}
}

func TestNotice(t *testing.T) {
	msgs := map[string]string{"saved": "Tersimpan."}

	if got := Notice(httptest.NewRequest("GET", "/periods?notice=saved", nil), msgs); got != "Tersimpan." {
		t.Errorf("known code: got %q", got)
	}
	if got := Notice(httptest.NewRequest("GET", "/periods?notice=<script>", nil), msgs); got != "" {
		t.Errorf("unknown code: got %q", got)
	}
}

func TestWithNotice(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/periods", "/periods?notice=in_use"},
		{"/divisions?period=abc", "/divisions?period=abc&notice=in_use"},
	}
	for _, tc := range tests {
		if got := WithNotice(tc.in, "in_use"); got != tc.want {
			t.Errorf("WithNotice(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

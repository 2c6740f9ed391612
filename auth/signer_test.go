package auth

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-chpp/core"
)

func fixedSigner(nonce string, timestamp int64) *Signer {
	return &Signer{
		Now:   func() time.Time { return time.Unix(timestamp, 0) },
		Nonce: func() string { return nonce },
	}
}

func TestPercentEncode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abcABC123", "abcABC123"},
		{"-._~", "-._~"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"key=value&x", "key%3Dvalue%26x"},
		{"ä", "%C3%A4"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := PercentEncode(tc.in); got != tc.want {
			t.Fatalf("encode %q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestSignatureBaseString(t *testing.T) {
	params := map[string]string{
		"oauth_consumer_key":     "dpf43f3p2l4k5l03",
		"oauth_token":            "nnch734d00sl2jdk",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        "1191242096",
		"oauth_nonce":            "kllo9940pd9333jh",
		"oauth_version":          "1.0",
		"file":                   "vacation.jpg",
		"size":                   "original",
	}
	want := "GET&http%3A%2F%2Fphotos.example.net%2Fphotos&file%3Dvacation.jpg%26oauth_consumer_key%3Ddpf43f3p2l4k5l03%26oauth_nonce%3Dkllo9940pd9333jh%26oauth_signature_method%3DHMAC-SHA1%26oauth_timestamp%3D1191242096%26oauth_token%3Dnnch734d00sl2jdk%26oauth_version%3D1.0%26size%3Doriginal"
	if got := SignatureBaseString("get", "http://photos.example.net/photos", params); got != want {
		t.Fatalf("base string mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestSignKnownVector(t *testing.T) {
	signer := fixedSigner("kllo9940pd9333jh", 1191242096)
	sc := signer.FreshContext(
		core.ConsumerCredentials{Key: "dpf43f3p2l4k5l03", Secret: "kd94hf93k423kf44"},
		core.AccessToken{Token: "nnch734d00sl2jdk", Secret: "pfkkdhi9sl3r4s00"},
	)

	query := url.Values{}
	query.Set("file", "vacation.jpg")
	query.Set("size", "original")

	got := signer.Sign(sc, "GET", "http://photos.example.net/photos", query, nil)
	if got != "pF8M0JOpZDAd9WJvYjc/rgecYWM=" {
		t.Fatalf("unexpected signature: %s", got)
	}
}

func TestSigningKeyWithoutTokenSecret(t *testing.T) {
	if got := SigningKey("consumer&secret", ""); got != "consumer%26secret&" {
		t.Fatalf("unexpected signing key: %s", got)
	}
}

func TestFreshContextMintsDistinctNonces(t *testing.T) {
	signer := NewSigner()
	consumer := core.ConsumerCredentials{Key: "k", Secret: "s"}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		sc := signer.FreshContext(consumer, core.AccessToken{})
		if sc.Nonce == "" {
			t.Fatalf("expected non-empty nonce")
		}
		if seen[sc.Nonce] {
			t.Fatalf("nonce %q minted twice", sc.Nonce)
		}
		seen[sc.Nonce] = true
		if sc.SignatureMethod != SignatureMethodHMACSHA1 {
			t.Fatalf("unexpected signature method %q", sc.SignatureMethod)
		}
	}
}

func TestAuthorizationHeaderShape(t *testing.T) {
	signer := fixedSigner("nonce-1", 1700000000)
	sc := signer.FreshContext(
		core.ConsumerCredentials{Key: "ckey", Secret: "csecret"},
		core.AccessToken{Token: "atoken", Secret: "asecret"},
	)

	header := signer.AuthorizationHeader(sc, "GET", "https://chpp.hattrick.org/chppxml.ashx", url.Values{"file": {"teamdetails"}}, nil)

	if !strings.HasPrefix(header, "OAuth ") {
		t.Fatalf("expected OAuth scheme prefix, got %q", header)
	}
	for _, part := range []string{
		`oauth_consumer_key="ckey"`,
		`oauth_token="atoken"`,
		`oauth_nonce="nonce-1"`,
		`oauth_timestamp="1700000000"`,
		`oauth_signature_method="HMAC-SHA1"`,
		`oauth_version="1.0"`,
		`oauth_signature="`,
	} {
		if !strings.Contains(header, part) {
			t.Fatalf("header missing %s: %s", part, header)
		}
	}
	if strings.Contains(header, "file=") {
		t.Fatalf("query params must stay off the header: %s", header)
	}
}

func TestAuthorizationHeaderIncludesExtraOAuthParams(t *testing.T) {
	signer := fixedSigner("nonce-2", 1700000001)
	sc := signer.FreshContext(core.ConsumerCredentials{Key: "ckey", Secret: "csecret"}, core.AccessToken{})

	header := signer.AuthorizationHeader(sc, "GET", "https://chpp.hattrick.org/oauth/request_token.ashx", nil, map[string]string{
		"oauth_callback": "oob",
	})
	if !strings.Contains(header, `oauth_callback="oob"`) {
		t.Fatalf("expected callback in header: %s", header)
	}
	if strings.Contains(header, `oauth_token="`) {
		t.Fatalf("token must be omitted before the first leg: %s", header)
	}
}

package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-chpp/core"
)

// SignatureMethodHMACSHA1 is the only signature method the gateway accepts.
const SignatureMethodHMACSHA1 = "HMAC-SHA1"

const oauthVersion = "1.0"

// Signer produces OAuth 1.0a signatures and Authorization headers. The zero
// value is usable; Now and Nonce hooks exist so tests can pin signing inputs.
type Signer struct {
	Now   func() time.Time
	Nonce func() string
}

func NewSigner() *Signer {
	return &Signer{}
}

func (s *Signer) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Signer) nonce() string {
	if s != nil && s.Nonce != nil {
		return s.Nonce()
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FreshContext mints signing material for one request. Each call produces a
// distinct nonce.
func (s *Signer) FreshContext(consumer core.ConsumerCredentials, token core.AccessToken) core.SigningContext {
	return core.SigningContext{
		Consumer:        consumer,
		Token:           token,
		Nonce:           s.nonce(),
		Timestamp:       s.now().Unix(),
		SignatureMethod: SignatureMethodHMACSHA1,
	}
}

// PercentEncode applies the strict encoding signatures require. Unreserved
// characters pass through; everything else becomes uppercase %XX, including
// space.
func PercentEncode(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= 'A' && c <= 'Z',
			c >= 'a' && c <= 'z',
			c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteString(fmt.Sprintf("%%%02X", c))
		}
	}
	return b.String()
}

func oauthParams(sc core.SigningContext, extra map[string]string) map[string]string {
	params := map[string]string{
		"oauth_consumer_key":     sc.Consumer.Key,
		"oauth_nonce":            sc.Nonce,
		"oauth_signature_method": sc.SignatureMethod,
		"oauth_timestamp":        strconv.FormatInt(sc.Timestamp, 10),
		"oauth_version":          oauthVersion,
	}
	if sc.Token.Token != "" {
		params["oauth_token"] = sc.Token.Token
	}
	for key, value := range extra {
		params[key] = value
	}
	return params
}

// SignatureBaseString builds METHOD&encoded-url&encoded-params over the
// union of protocol and query parameters, sorted by encoded key then value.
func SignatureBaseString(method, baseURL string, params map[string]string) string {
	type pair struct {
		key   string
		value string
	}
	pairs := make([]pair, 0, len(params))
	for key, value := range params {
		pairs = append(pairs, pair{key: PercentEncode(key), value: PercentEncode(value)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	var joined strings.Builder
	for i, p := range pairs {
		if i > 0 {
			joined.WriteByte('&')
		}
		joined.WriteString(p.key)
		joined.WriteByte('=')
		joined.WriteString(p.value)
	}

	return strings.ToUpper(method) + "&" + PercentEncode(baseURL) + "&" + PercentEncode(joined.String())
}

// SigningKey joins the encoded consumer secret and token secret. The token
// secret is empty on the first handshake leg.
func SigningKey(consumerSecret, tokenSecret string) string {
	return PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
}

// Sign computes the base64 HMAC-SHA1 signature for one request.
func (s *Signer) Sign(sc core.SigningContext, method, baseURL string, query url.Values, extraOAuth map[string]string) string {
	params := oauthParams(sc, extraOAuth)
	for key, values := range query {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	base := SignatureBaseString(method, baseURL, params)
	mac := hmac.New(sha1.New, []byte(SigningKey(sc.Consumer.Secret, sc.Token.Secret)))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// AuthorizationHeader renders the full OAuth header value for one request.
// Query parameters participate in the signature but stay on the URL.
func (s *Signer) AuthorizationHeader(sc core.SigningContext, method, baseURL string, query url.Values, extraOAuth map[string]string) string {
	signature := s.Sign(sc, method, baseURL, query, extraOAuth)

	headerParams := oauthParams(sc, extraOAuth)
	headerParams["oauth_signature"] = signature

	keys := make([]string, 0, len(headerParams))
	for key := range headerParams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("OAuth ")
	for i, key := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(PercentEncode(key))
		b.WriteString(`="`)
		b.WriteString(PercentEncode(headerParams[key]))
		b.WriteString(`"`)
	}
	return b.String()
}

package transcode

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Callbacks signed outside this window are rejected so a captured payload
// cannot be replayed later.
const signatureTolerance = 5 * time.Minute

var now = time.Now

// VerifySignature checks the signature attached to transcoder status
// callbacks. The header carries a unix timestamp and an HMAC-SHA256 of
// "<timestamp>.<payload>" keyed with the webhook signing secret, in the
// form "t=<timestamp>,v1=<hex digest>".
func VerifySignature(header string, payload, secret []byte) error {
	var ts, sig string
	for _, field := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(field), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sig = v
		}
	}
	if ts == "" || sig == "" {
		return errors.New("malformed signature header")
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return errors.New("malformed signature timestamp")
	}
	want, err := hex.DecodeString(sig)
	if err != nil {
		return errors.New("malformed signature digest")
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	if !hmac.Equal(mac.Sum(nil), want) {
		return errors.New("signature mismatch")
	}
	if d := now().Sub(time.Unix(unix, 0)); d > signatureTolerance || d < -signatureTolerance {
		return errors.New("signature timestamp out of tolerance")
	}
	return nil
}

package claims

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is a parsed cache payload: the claim list plus the hash and
// signature that bind it. The hash covers exactly the byte span of the
// claims JSON array in the original payload, so re-signing never requires
// reserializing the whole envelope.
type Envelope struct {
	Claims    ClaimSet
	Hash      []byte
	Signature []byte
}

type claimDTO struct {
	Type  string  `json:"type"`
	Value *string `json:"value"`
}

// Read parses a cache payload of the form
//
//	{"claims":[{"type":...,"value":...},...],"signature":"base64"}
//
// in a single forward-only token scan, computing SHA-256 over the exact
// byte span of the claims array as a side effect. A structurally invalid
// or truncated payload is a hard failure: a payload that parses partially
// could otherwise hide a forged hash.
func Read(payload []byte) (*Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: expected object, got %v", ErrMalformedPayload, tok)
	}

	env := &Envelope{}
	var sawClaims, sawSignature bool

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Join(ErrMalformedPayload, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected object key, got %v", ErrMalformedPayload, keyTok)
		}

		switch key {
		case "claims":
			set, hash, err := readClaimsArray(dec, payload)
			if err != nil {
				return nil, err
			}
			env.Claims, env.Hash = set, hash
			sawClaims = true
		case "signature":
			valTok, err := dec.Token()
			if err != nil {
				return nil, errors.Join(ErrMalformedPayload, err)
			}
			s, ok := valTok.(string)
			if !ok {
				return nil, fmt.Errorf("%w: signature must be a string", ErrMalformedPayload)
			}
			sig, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, errors.Join(ErrInvalidSignatureEncoding, err)
			}
			env.Signature = sig
			sawSignature = true
		default:
			if err := skipValue(dec); err != nil {
				return nil, errors.Join(ErrMalformedPayload, err)
			}
		}
	}

	// Closing brace of the envelope object. A truncated stream fails here.
	if _, err := dec.Token(); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}

	if !sawClaims {
		return nil, ErrMissingClaims
	}
	if !sawSignature {
		return nil, ErrMissingSignature
	}

	return env, nil
}

// readClaimsArray consumes the claims array, recording the byte offsets of
// the opening and closing brackets so the hash covers exactly that span.
func readClaimsArray(dec *json.Decoder, payload []byte) (ClaimSet, []byte, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, errors.Join(ErrMalformedPayload, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, nil, fmt.Errorf("%w: claims must be an array", ErrMalformedPayload)
	}
	start := dec.InputOffset() - 1 // offset of '['

	var set ClaimSet
	for dec.More() {
		var c claimDTO
		if err := dec.Decode(&c); err != nil {
			return nil, nil, errors.Join(ErrMalformedPayload, err)
		}
		claim := Claim{Type: c.Type}
		if c.Value != nil {
			claim.Value = *c.Value
		}
		set = append(set, claim)
	}

	tok, err = dec.Token()
	if err != nil {
		return nil, nil, errors.Join(ErrMalformedPayload, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != ']' {
		return nil, nil, fmt.Errorf("%w: unterminated claims array", ErrMalformedPayload)
	}
	end := dec.InputOffset() // offset just past ']'

	sum := sha256.Sum256(payload[start:end])
	return set, sum[:], nil
}

// skipValue consumes one JSON value (scalar, object or array) without
// materializing it.
func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}

// MarshalClaims serializes the claim list to its JSON array form and
// returns the SHA-256 hash over those exact bytes. The array bytes are the
// unit that gets signed; EncodeEnvelope embeds them untouched.
func MarshalClaims(set ClaimSet) (arr []byte, hash []byte, err error) {
	if set == nil {
		set = ClaimSet{}
	}
	arr, err = json.Marshal(set)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal claims: %w", err)
	}
	sum := sha256.Sum256(arr)
	return arr, sum[:], nil
}

// EncodeEnvelope assembles a cache payload around a pre-marshaled claims
// array and its signature. The claims array bytes are embedded verbatim so
// the signed span survives the round trip through the cache.
func EncodeEnvelope(claimsArray, signature []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(claimsArray) + base64.StdEncoding.EncodedLen(len(signature)) + 32)
	buf.WriteString(`{"claims":`)
	buf.Write(claimsArray)
	buf.WriteString(`,"signature":"`)
	buf.WriteString(base64.StdEncoding.EncodeToString(signature))
	buf.WriteString(`"}`)
	return buf.Bytes()
}

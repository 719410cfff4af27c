package foreign

import (
	"context"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"hash"
	"unicode/utf8"

	"jay/internal/interop"
)

func cryptoType() interop.HostType {
	s := interop.String("s")
	return interop.HostType{
		Name: "jay.crypto",
		Methods: []interop.Method{
			static("md5", digest(md5.New), s),
			static("sha256", digest(sha256.New), s),
			static("sha512", digest(sha512.New), s),
			static("hmacSha256", cryptoHmacSha256, interop.String("message"), interop.String("secret")),
			static("base64Encode", cryptoBase64Encode, s),
			static("base64Decode", cryptoBase64Decode, s),
			static("hexEncode", cryptoHexEncode, s),
		},
	}
}

// digest hashes the UTF-8 bytes of the argument and returns lowercase hex.
func digest(newHash func() hash.Hash) interop.Func {
	return func(_ context.Context, _ any, args []any) (any, error) {
		h := newHash()
		h.Write([]byte(args[0].(string)))
		return hex.EncodeToString(h.Sum(nil)), nil
	}
}

func cryptoHmacSha256(_ context.Context, _ any, args []any) (any, error) {
	mac := hmac.New(sha256.New, []byte(args[1].(string)))
	mac.Write([]byte(args[0].(string)))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func cryptoBase64Encode(_ context.Context, _ any, args []any) (any, error) {
	return base64.StdEncoding.EncodeToString([]byte(args[0].(string))), nil
}

func cryptoBase64Decode(_ context.Context, _ any, args []any) (any, error) {
	b, err := base64.StdEncoding.DecodeString(args[0].(string))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, errors.New("decoded data is not valid UTF-8 text")
	}
	return string(b), nil
}

func cryptoHexEncode(_ context.Context, _ any, args []any) (any, error) {
	return hex.EncodeToString([]byte(args[0].(string))), nil
}

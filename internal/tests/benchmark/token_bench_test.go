package benchmark

import (
	"strings"
	"testing"

	"github.com/yndnr/tokgate/internal/telemetry/metric"
	"github.com/yndnr/tokgate/pkg/crypto/keystore"
	"github.com/yndnr/tokgate/pkg/token"
)

func BenchmarkNonce(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := token.GenerateNonce(token.DefaultNonceLength); err != nil {
			b.Fatalf("GenerateNonce() error = %v", err)
		}
	}
}

func BenchmarkKeyStore(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ks, err := keystore.New()
		if err != nil {
			b.Fatalf("keystore.New() error = %v", err)
		}
		ks.Destroy()
	}
}

func BenchmarkIssue(b *testing.B) {
	for _, c := range Ciphers {
		b.Run(string(c), func(b *testing.B) {
			svc := newTokenService(b, c, nil)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := svc.Issue(benchIdentifier); err != nil {
					b.Fatalf("Issue() error = %v", err)
				}
			}
		})
	}
}

func BenchmarkVerify(b *testing.B) {
	for _, c := range Ciphers {
		b.Run(string(c), func(b *testing.B) {
			svc := newTokenService(b, c, nil)
			tokens := issueTokens(b, svc, 1024)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if !svc.Verify(tokens[i%len(tokens)]).Valid() {
					b.Fatal("token rejected")
				}
			}
		})
	}
}

func BenchmarkVerify_Parallel(b *testing.B) {
	svc := newTokenService(b, "", nil)
	tokens := issueTokens(b, svc, 1024)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if !svc.Verify(tokens[i%len(tokens)]).Valid() {
				b.Error("token rejected")
				return
			}
			i++
		}
	})
}

func BenchmarkVerify_Instrumented(b *testing.B) {
	svc := newTokenService(b, "", metric.NewRegistry())
	tok := issueTokens(b, svc, 1)[0]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.Verify(tok)
	}
}

// Rejections must stay cheap, since anyone can submit garbage.
func BenchmarkVerify_Rejected(b *testing.B) {
	svc := newTokenService(b, "", nil)
	tok := issueTokens(b, svc, 1)[0]

	cases := map[string]string{
		"not_hex":  strings.Repeat("zz", len(tok)/2),
		"tampered": tok[:len(tok)-1] + flip(tok[len(tok)-1]),
		"short":    tok[:32],
	}
	for name, in := range cases {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if svc.Verify(in).Valid() {
					b.Fatal("rejected input verified")
				}
			}
		})
	}
}

func BenchmarkFingerprint(b *testing.B) {
	svc := newTokenService(b, "", nil)
	tok := issueTokens(b, svc, 1)[0]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		token.Fingerprint(tok)
	}
}

func flip(c byte) string {
	if c == '0' {
		return "1"
	}
	return "0"
}

// Package benchmark holds performance benchmarks for token issuance and
// verification.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Compare ciphers:
//
//	go test -bench=BenchmarkVerify -benchmem -count=5 ./internal/tests/benchmark/... | tee bench.txt
//	benchstat old.txt bench.txt
package benchmark

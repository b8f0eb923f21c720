// Package shutdown coordinates graceful process termination.
//
// Components register named hooks; on SIGINT, SIGTERM or context
// cancellation the hooks run in reverse registration order under a shared
// deadline. Hooks registered first (such as destroying the key store)
// therefore run last.
//
//	h := shutdown.NewHandler(10*time.Second, log)
//	h.OnShutdown("keystore", func(context.Context) error { ks.Destroy(); return nil })
//	h.OnShutdown("http", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown

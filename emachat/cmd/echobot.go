// Companion chatbot for local runs: streams an echo of every prompt on the
// socket emachat connects to.
package main

import (
	"context"
	"emachat/emachat/config"
	"emachat/emachat/controllers"
	"emachat/emachat/routes"
	"emachat/emachat/utils/logging"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		os.Stderr.WriteString("logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logging.Sync()

	bot := controllers.NewBotController(cfg.EchoBotDelay)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Mount("/", routes.NewRouter(bot))

	srv := &http.Server{
		Addr:    cfg.EchoBotAddr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("echobot listening", zap.String("addr", cfg.EchoBotAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}

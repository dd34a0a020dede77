package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apiconfig "fiscal_impact/pkg/api/config"
	apistudy "fiscal_impact/pkg/api/study"
	"fiscal_impact/pkg/api/web"
	"fiscal_impact/pkg/core/agent"
	"fiscal_impact/pkg/core/config"
	"fiscal_impact/pkg/core/store"
	corestudy "fiscal_impact/pkg/core/study"
)

func main() {
	// Load environment variables (API keys live here, not in the yaml)
	godotenv.Load()

	cfg, err := config.Load("config/app.yaml")
	if err != nil {
		log.Printf("[FATAL] %v", err)
		os.Exit(1)
	}

	agentMgr := agent.NewManager(cfg.Agent)
	if err := agentMgr.CheckCredential(); err != nil {
		log.Printf("[FATAL] %v", err)
		os.Exit(1)
	}

	sessions := store.NewSessionStore()
	analyzer := corestudy.NewAnalyzer(agentMgr, corestudy.Options{
		FallbackPercent: cfg.Analysis.FallbackPercent,
		LenientParser:   cfg.Analysis.LenientParser,
	})

	// Config endpoints
	configHandler := apiconfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Study endpoints
	studyHandler := apistudy.NewHandler(analyzer, sessions)
	http.HandleFunc("/api/study/analyze", studyHandler.HandleAnalyze)
	http.HandleFunc("/api/study/upload", studyHandler.HandleUpload)
	http.HandleFunc("GET /api/study/{id}/export", studyHandler.HandleExport)

	// Web UI
	webHandler := web.NewHandler(analyzer, sessions)
	http.HandleFunc("/", webHandler.HandleIndex)
	http.HandleFunc("/study", webHandler.HandleSubmit)

	fmt.Printf("API server starting on %s (provider: %s)...\n", cfg.Server.Addr, agentMgr.GetActiveProvider())
	fmt.Println("  - GET  /                          (form UI)")
	fmt.Println("  - POST /study                     (form submit)")
	fmt.Println("  - POST /api/study/analyze")
	fmt.Println("  - POST /api/study/upload")
	fmt.Println("  - GET  /api/study/{id}/export?format=pdf|docx|json")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")

	if err := http.ListenAndServe(cfg.Server.Addr, nil); err != nil {
		log.Printf("[FATAL] Server failed to start: %v", err)
		os.Exit(1)
	}
}

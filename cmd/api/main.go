package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/drewboyeh/payroll-app/internal/config"
	appHTTP "github.com/drewboyeh/payroll-app/internal/handler/http"
	"github.com/drewboyeh/payroll-app/internal/pkg/storage"
	"github.com/drewboyeh/payroll-app/internal/repository/pipetext"
	payrollService "github.com/drewboyeh/payroll-app/internal/service/payroll"
	reportService "github.com/drewboyeh/payroll-app/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	reportStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		fmt.Println("Error initializing storage:", err)
		return
	}

	punchRepo := pipetext.NewPunchRepository()
	employeeRepo := pipetext.NewEmployeeRepository()
	storeRepo := pipetext.NewStoreRepository()

	analyzerSvc := payrollService.NewAnalyzerService(punchRepo, employeeRepo, storeRepo)
	reportSvc := reportService.NewReportService(reportStorage)

	payrollHandler := appHTTP.NewPayrollHandler(analyzerSvc, reportSvc, cfg.MaxUploadBytes())

	router := appHTTP.NewRouter(cfg, payrollHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}

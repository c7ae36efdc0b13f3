package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"snaptrade-core/pkg/config"
	"snaptrade-core/pkg/i18n"
	"snaptrade-core/pkg/prelude"
)

type HealthStatus struct {
	Service   string    `json:"service"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthReport struct {
	Overall  string         `json:"overall"`
	Services []HealthStatus `json:"services"`
}

func main() {
	log.SetLevel(log.WarnLevel)

	report := HealthReport{
		Overall:  "HEALTHY",
		Services: make([]HealthStatus, 0),
	}

	// Must run before the others so .env values are visible to them.
	report.Services = append(report.Services, checkEnvFile())

	cfg, cfgStatus := checkConfig()
	report.Services = append(report.Services, cfgStatus)
	if cfg != nil {
		i18n.SetLanguage(i18n.Language(cfg.Language))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	report.Services = append(report.Services, checkSnapTrade(ctx))

	for _, svc := range report.Services {
		if svc.Status == "UNHEALTHY" {
			report.Overall = "UNHEALTHY"
			break
		} else if svc.Status == "DEGRADED" && report.Overall != "UNHEALTHY" {
			report.Overall = "DEGRADED"
		}
	}

	fmt.Println(i18n.Get("HealthTitle"))
	fmt.Println("=====================")
	fmt.Println()
	fmt.Println(i18n.Get("HealthResults"))
	fmt.Println("--------")
	for _, svc := range report.Services {
		statusIcon := "✓"
		if svc.Status == "UNHEALTHY" {
			statusIcon = "✗"
		} else if svc.Status == "DEGRADED" {
			statusIcon = "⚠"
		}
		fmt.Printf("%s %-20s %s %s\n", statusIcon, svc.Service, svc.Status, svc.Message)
	}

	fmt.Println()
	fmt.Printf(i18n.Get("HealthOverall")+"\n", report.Overall)

	if len(os.Args) > 1 && os.Args[1] == "--json" {
		jsonData, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(jsonData))
	}

	if report.Overall == "UNHEALTHY" {
		os.Exit(1)
	}
}

func checkEnvFile() HealthStatus {
	status := HealthStatus{
		Service:   "Environment file",
		Status:    "HEALTHY",
		Timestamp: time.Now(),
	}

	if _, err := os.Stat(config.DefaultEnvFile); err != nil {
		status.Status = "DEGRADED"
		status.Message = fmt.Sprintf(i18n.Get("EnvFileAbsent"), config.DefaultEnvFile)
		return status
	}
	if err := prelude.LoadDotenv(); err != nil {
		status.Status = "UNHEALTHY"
		status.Message = err.Error()
		return status
	}
	status.Message = fmt.Sprintf(i18n.Get("EnvFileFound"), config.DefaultEnvFile)
	return status
}

func checkConfig() (*config.Config, HealthStatus) {
	status := HealthStatus{
		Service:   "Configuration",
		Status:    "HEALTHY",
		Timestamp: time.Now(),
	}

	cfg, err := config.Load(prelude.OS)
	if err != nil {
		status.Status = "UNHEALTHY"
		status.Message = fmt.Sprintf(i18n.Get("ConfigLoadFailed"), err)
		return nil, status
	}
	status.Message = fmt.Sprintf("BaseURL=%s Timeout=%s", cfg.BaseURL, cfg.Timeout)
	return cfg, status
}

func checkSnapTrade(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Service:   "SnapTrade API",
		Status:    "HEALTHY",
		Timestamp: time.Now(),
	}

	client, err := prelude.Default()
	if err != nil {
		status.Status = "UNHEALTHY"
		status.Message = fmt.Sprintf(i18n.Get("ClientInitFailed"), err)
		return status
	}

	apiStatus, err := client.APIStatus(ctx)
	if err != nil {
		status.Status = "UNHEALTHY"
		status.Message = fmt.Sprintf(i18n.Get("StatusCheckFailed"), err)
		return status
	}
	if !apiStatus.Online {
		status.Status = "DEGRADED"
		status.Message = i18n.Get("APIOffline")
		return status
	}

	status.Message = fmt.Sprintf(i18n.Get("APIOnline")+" offset=%s", apiStatus.Version, client.TimeSync().Offset())
	return status
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	appai "github.com/bryanwahyu/hse-assistant/internal/application/ai"
	appreports "github.com/bryanwahyu/hse-assistant/internal/application/reports"
	"github.com/bryanwahyu/hse-assistant/internal/config"
	domai "github.com/bryanwahyu/hse-assistant/internal/domain/ai"
	domain "github.com/bryanwahyu/hse-assistant/internal/domain/reports"
	"github.com/bryanwahyu/hse-assistant/internal/i18n"
	"github.com/bryanwahyu/hse-assistant/internal/infra/ai/offline"
	"github.com/bryanwahyu/hse-assistant/internal/infra/ai/openai"
	"github.com/bryanwahyu/hse-assistant/internal/infra/memory"
	"github.com/bryanwahyu/hse-assistant/internal/pkg/logger"
)

func main() {
	imageFlag := flag.String("image", "", "Path to the incident photo")
	descFlag := flag.String("description", "", "What happened")
	locFlag := flag.String("location", "", "Where it happened")
	langFlag := flag.String("lang", "fr", "Output language (ar or fr)")
	offlineFlag := flag.Bool("offline", false, "Use the keyword rules instead of the AI provider")
	flag.Parse()

	lang, ok := i18n.ParseLanguage(*langFlag)
	if !ok {
		log.Fatalf("unsupported language %q (use ar or fr)", *langFlag)
	}
	if *imageFlag == "" || *descFlag == "" || *locFlag == "" {
		log.Fatal(i18n.T(lang, "formErrorAllFields"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if *offlineFlag {
		cfg.AI.Provider = "offline"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer appLog.Sync()

	var client domai.Client = openai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
	if cfg.AI.Provider == "offline" {
		client = offline.NewClient()
	}

	img, err := os.ReadFile(*imageFlag)
	if err != nil {
		log.Fatalf("read image: %v", err)
	}

	svc := appreports.NewService(memory.NewReportRepository(), appai.NewService(client, appLog), appLog)
	svc.MaxImageBytes = cfg.Upload.MaxImageBytes

	color.Cyan("%s", i18n.T(lang, "formSubmittingButton"))
	rep, err := svc.Submit(ctx, appreports.SubmitCommand{
		Image:       img,
		Description: *descFlag,
		Location:    *locFlag,
		Language:    lang,
	})
	if err != nil {
		color.Red("%s", i18n.T(lang, i18n.ErrorKey(err)))
		log.Fatalf("analysis: %v", err)
	}
	printReport(color.Output, rep, lang)
}

// severityColor follows the table pills: low sky, medium yellow, high orange, critical red.
func severityColor(s domain.Severity) *color.Color {
	switch s {
	case domain.SeverityLow:
		return color.New(color.FgHiCyan)
	case domain.SeverityMedium:
		return color.New(color.FgYellow)
	case domain.SeverityHigh:
		return color.New(color.FgHiRed)
	case domain.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.Reset)
}

func printReport(w io.Writer, rep *domain.Report, lang domain.Language) {
	row := func(key, value string) {
		fmt.Fprintf(w, "%-24s %s\n", i18n.T(lang, key)+":", value)
	}
	row("tableHeaderDate", rep.Date)
	row("tableHeaderLocation", rep.Location)
	row("tableHeaderHazard", rep.HazardType.Get(lang))
	row("tableHeaderSeverity", severityColor(rep.Severity).Sprint(i18n.SeverityLabel(lang, rep.Severity)))
	row("tableHeaderSolution", rep.ProposedSolution.Get(lang))
	row("tableHeaderResponsible", rep.ResponsiblePerson.Get(lang))
	fmt.Fprintf(w, "%-24s %s\n", "ID:", rep.ID)
}

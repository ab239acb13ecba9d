package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/bryanwahyu/hse-assistant/internal/domain/reports"
)

// Client is a keyword-driven stand-in for the multimodal model. It never looks
// at the image; it exists for demos and local runs without an API key.
type Client struct{}

func NewClient() *Client { return &Client{} }

type detector struct {
	re       *regexp.Regexp
	hazard   reports.LocalizedString
	severity reports.Severity
	solution reports.LocalizedString
	owner    reports.LocalizedString
}

// First match wins, so higher-risk patterns come first.
var detectors = []detector{
	{
		re:       regexp.MustCompile(`(?i)(fire|feu|incendie|flamme|smoke|fumée|حريق|دخان)`),
		hazard:   reports.LocalizedString{AR: "خطر حريق", FR: "Risque d'incendie"},
		severity: reports.SeverityCritical,
		solution: reports.LocalizedString{AR: "إخلاء المنطقة والتحقق من معدات الإطفاء", FR: "Évacuer la zone et vérifier les moyens d'extinction"},
		owner:    reports.LocalizedString{AR: "فريق الطوارئ", FR: "Équipe d'intervention"},
	},
	{
		re:       regexp.MustCompile(`(?i)(wire|câble|cable|électri|electri|voltage|tension|كهرب|أسلاك)`),
		hazard:   reports.LocalizedString{AR: "خطر كهربائي", FR: "Risque électrique"},
		severity: reports.SeverityHigh,
		solution: reports.LocalizedString{AR: "فصل التيار وعزل الأسلاك المكشوفة", FR: "Couper l'alimentation et isoler les câbles exposés"},
		owner:    reports.LocalizedString{AR: "فريق الكهرباء", FR: "Équipe électrique"},
	},
	{
		re:       regexp.MustCompile(`(?i)(chemical|chimique|acide|acid|solvant|solvent|fuite|leak|كيميا|تسرب)`),
		hazard:   reports.LocalizedString{AR: "خطر كيميائي", FR: "Risque chimique"},
		severity: reports.SeverityHigh,
		solution: reports.LocalizedString{AR: "احتواء التسرب وارتداء معدات الحماية", FR: "Contenir la fuite et porter les EPI adaptés"},
		owner:    reports.LocalizedString{AR: "قسم البيئة", FR: "Service environnement"},
	},
	{
		re:       regexp.MustCompile(`(?i)(machine|press|presse|convoyeur|conveyor|garde|guard|آلة|مكبس)`),
		hazard:   reports.LocalizedString{AR: "خطر ميكانيكي", FR: "Risque mécanique"},
		severity: reports.SeverityHigh,
		solution: reports.LocalizedString{AR: "إعادة تركيب واقي الآلة قبل التشغيل", FR: "Réinstaller le carter de protection avant remise en marche"},
		owner:    reports.LocalizedString{AR: "قسم الصيانة", FR: "Service maintenance"},
	},
	{
		re:       regexp.MustCompile(`(?i)(slip|glissant|sol|floor|oil|huile|chute|fall|انزلاق|سقوط|زيت)`),
		hazard:   reports.LocalizedString{AR: "خطر الانزلاق والسقوط", FR: "Risque de glissade et de chute"},
		severity: reports.SeverityMedium,
		solution: reports.LocalizedString{AR: "تنظيف الأرضية ووضع لافتات تحذيرية", FR: "Nettoyer le sol et poser une signalisation"},
		owner:    reports.LocalizedString{AR: "فريق النظافة", FR: "Équipe de nettoyage"},
	},
}

var fallback = detector{
	hazard:   reports.LocalizedString{AR: "خطر عام", FR: "Risque général"},
	severity: reports.SeverityLow,
	solution: reports.LocalizedString{AR: "فحص الموقع من قبل مسؤول السلامة", FR: "Faire inspecter le site par le responsable HSE"},
	owner:    reports.LocalizedString{AR: "مسؤول السلامة", FR: "Responsable HSE"},
}

// Analyze returns a JSON assessment matching the provider schema.
func (c *Client) Analyze(ctx context.Context, req reports.AnalysisRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text := strings.TrimSpace(req.Description + " " + req.Location)

	d := fallback
	for _, cand := range detectors {
		if cand.re.MatchString(text) {
			d = cand
			break
		}
	}

	out := reports.AnalysisResult{
		HazardType:        d.hazard,
		Severity:          d.severity,
		ProposedSolution:  d.solution,
		ResponsiblePerson: d.owner,
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to marshal assessment: %w", err)
	}
	return string(b), nil
}

package usedparts

import (
	"regexp"
	"strings"

	"ezypc-storefront/internal/models"
)

var gradeDescriptions = map[models.Grade]string{
	models.GradeA: "Like new condition",
	models.GradeB: "Excellent condition, minor signs of use",
	models.GradeC: "Good condition, visible wear",
}

func GradeDescription(g models.Grade) string {
	return gradeDescriptions[g]
}

func imageURL(query string) string {
	return "https://source.unsplash.com/400x300/?" + query
}

// SeedParts is the certified pre-owned inventory the store launched with.
var SeedParts = []models.UsedPart{
	{
		ID:        "gpu-1660s",
		Component: "NVIDIA GTX 1660 Super",
		Grade:     models.GradeA,
		Condition: "Used - 1 year",
		Price:     12000,
		ImageURL:  imageURL("graphics-card,nvidia"),
		Details:   "Excellent condition, fully tested under load. Great for 1080p gaming.",
	},
	{
		ID:        "cpu-3600",
		Component: "AMD Ryzen 5 3600",
		Grade:     models.GradeB,
		Condition: "Used - 2 years",
		Price:     8500,
		ImageURL:  imageURL("cpu-processor,amd"),
		Details:   "Solid 6-core performance, includes stock cooler. Never overclocked.",
	},
	{
		ID:        "ram-ddr4-16gb",
		Component: "Corsair Vengeance 16GB DDR4 Kit",
		Grade:     models.GradeA,
		Condition: "Used - 8 months",
		Price:     3200,
		ImageURL:  imageURL("computer-ram,corsair"),
		Details:   "3200MHz CL16 dual-channel kit. Perfect working order.",
	},
	{
		ID:        "psu-550w",
		Component: "Cooler Master MWE 550W PSU",
		Grade:     models.GradeA,
		Condition: "Used - 6 months",
		Price:     2500,
		ImageURL:  imageURL("power-supply-unit"),
		Details:   "80+ Bronze certified. Reliable power supply with all original cables.",
	},
	{
		ID:        "ssd-970-500gb",
		Component: "Samsung 970 Evo 500GB NVMe SSD",
		Grade:     models.GradeB,
		Condition: "Used - 1.5 years",
		Price:     3000,
		ImageURL:  imageURL("ssd,samsung"),
		Details:   "Fast NVMe speeds, healthy drive status with plenty of life left.",
	},
	{
		ID:        "gpu-2060",
		Component: "NVIDIA RTX 2060",
		Grade:     models.GradeB,
		Condition: "Used - 2 years",
		Price:     15500,
		ImageURL:  imageURL("graphics-card,rtx"),
		Details:   "Great for 1080p ray tracing and DLSS. Well-maintained.",
	},
	{
		ID:        "cpu-10400f",
		Component: "Intel Core i5-10400F",
		Grade:     models.GradeA,
		Condition: "Used - 1 year",
		Price:     7000,
		ImageURL:  imageURL("cpu-processor,intel"),
		Details:   "Excellent gaming and productivity CPU. Low power consumption.",
	},
	{
		ID:        "mobo-b450",
		Component: "MSI B450 Tomahawk Motherboard",
		Grade:     models.GradeC,
		Condition: "Used - 2.5 years",
		Price:     5000,
		ImageURL:  imageURL("motherboard,msi"),
		Details:   "AM4 socket, fully functional but has one non-working USB 2.0 port.",
	},
}

var brandWords = regexp.MustCompile(`amd|nvidia|intel|geforce|rtx|gtx`)

func coreName(s string) string {
	return strings.TrimSpace(brandWords.ReplaceAllString(strings.ToLower(s), ""))
}

// MatchComponent returns the first used part whose brand-stripped name is
// contained in a component spec. Components are tried in order; nil means
// no match.
func MatchComponent(components []models.ComponentSpec, parts []models.UsedPart) *models.UsedPart {
	for _, c := range components {
		spec := coreName(c.Spec)
		for i := range parts {
			if strings.Contains(spec, coreName(parts[i].Component)) {
				part := parts[i]
				return &part
			}
		}
	}
	return nil
}

package utils

// seriesStatus maps TMDB series status values to their pt-BR display form.
var seriesStatus = map[string]string{
	"Returning Series": "Em exibição",
	"Ended":            "Finalizada",
	"Canceled":         "Cancelada",
	"In Production":    "Em produção",
	"Planned":          "Planejada",
}

// jobTitles maps TMDB crew job names to their pt-BR display form.
var jobTitles = map[string]string{
	"Creator":            "Criador",
	"Executive Producer": "Produtor Executivo",
	"Producer":           "Produtor",
	"Writer":             "Roteirista",
	"Director":           "Diretor",
}

// TranslateSeriesStatus returns the pt-BR form of a TMDB series status.
// Unknown statuses pass through unchanged.
func TranslateSeriesStatus(status string) string {
	if translated, ok := seriesStatus[status]; ok {
		return translated
	}
	return status
}

// TranslateJob returns the pt-BR form of a TMDB crew job title.
// Unknown jobs pass through unchanged.
func TranslateJob(job string) string {
	if translated, ok := jobTitles[job]; ok {
		return translated
	}
	return job
}

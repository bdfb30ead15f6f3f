package jsearch

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jobdeck-dev/jobdeck/internal/models"
	"gorm.io/datatypes"
)

const (
	sourceLabel = "Glassdoor"

	// excludedCountry is dropped from composed locations: searches are
	// India-centric, so "IN" carries no information.
	excludedCountry = "IN"

	locationFallback = "India (Location not specified)"
	salaryFallback   = "Not Disclosed"
	summaryFallback  = "No description available"
	summaryMaxRunes  = 400

	placeholder    = "N/A"
	defaultJobType = "Full-time"
)

// normalize maps one aggregator listing onto the canonical job row shape.
func normalize(listing searchJob) models.Job {
	return models.Job{
		Source:   sourceLabel,
		Title:    orPlaceholder(listing.JobTitle, placeholder),
		Company:  orPlaceholder(listing.EmployerName, placeholder),
		Location: buildLocation(listing),
		JobType:  orPlaceholder(listing.JobEmploymentType, defaultJobType),
		Salary:   buildSalary(listing),
		Posted:   orPlaceholder(listing.JobPostedAtDatetimeUTC, placeholder),
		Summary:  buildSummary(listing.JobDescription),
		Benefits: buildBenefits(listing.JobHighlights.Benefits),
		Link:     buildLink(listing),
	}
}

// buildLocation composes city, state and country, skipping the excluded
// country, and prefixes remote listings.
func buildLocation(listing searchJob) string {
	var parts []string

	if listing.JobCity != "" {
		parts = append(parts, listing.JobCity)
	}
	if listing.JobState != "" {
		parts = append(parts, listing.JobState)
	}
	if listing.JobCountry != "" && listing.JobCountry != excludedCountry {
		parts = append(parts, listing.JobCountry)
	}

	switch {
	case listing.JobIsRemote && len(parts) > 0:
		return "Remote - " + strings.Join(parts, ", ")
	case listing.JobIsRemote:
		return "Remote"
	case len(parts) > 0:
		return strings.Join(parts, ", ")
	default:
		return locationFallback
	}
}

// buildSalary prefers a min/max range, then a single salary figure, then the
// fixed fallback. Ranges are rendered with thousands separators.
func buildSalary(listing searchJob) string {
	if listing.JobMinSalary != nil && listing.JobMaxSalary != nil {
		currency := listing.JobSalaryCurrency
		if currency == "" {
			currency = "USD"
		}
		return currency + " " + formatThousands(*listing.JobMinSalary) + " - " + formatThousands(*listing.JobMaxSalary)
	}

	if listing.JobSalary != nil {
		return strconv.FormatFloat(*listing.JobSalary, 'f', -1, 64)
	}

	return salaryFallback
}

func buildSummary(description string) string {
	if description == "" {
		return summaryFallback
	}

	runes := []rune(description)
	if len(runes) > summaryMaxRunes {
		return string(runes[:summaryMaxRunes])
	}

	return description
}

func buildLink(listing searchJob) string {
	if listing.JobApplyLink != "" {
		return listing.JobApplyLink
	}
	if listing.JobGoogleLink != "" {
		return listing.JobGoogleLink
	}
	return placeholder
}

func buildBenefits(benefits []string) datatypes.JSON {
	if len(benefits) == 0 {
		benefits = []string{placeholder}
	}

	encoded, err := json.Marshal(benefits)
	if err != nil {
		return datatypes.JSON(`["` + placeholder + `"]`)
	}

	return datatypes.JSON(encoded)
}

// formatThousands renders a salary figure with comma thousands separators,
// dropping the fraction when the value is whole.
func formatThousands(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	result := b.String()
	if hasFrac {
		result += "." + fracPart
	}
	if negative {
		result = "-" + result
	}

	return result
}

func orPlaceholder(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

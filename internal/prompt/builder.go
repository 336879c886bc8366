// Package prompt turns a recommendation intent into the instruction text sent
// to the generative model. Everything here is pure; user-supplied strings are
// inserted verbatim.
package prompt

import (
	"fmt"
	"strings"

	"ezypc-storefront/internal/models"
)

const (
	PopularProductCount = 9
	SimilarProductCount = 2

	persona      = "You are EZYPC, a calm, expert assistant for a PC store in Kerala, India."
	tone         = "Your tone must be trustworthy, reassuring, and professional."
	schemaFooter = "Generate the response according to the provided JSON schema."
)

// Vendors are illustrative; the model may name others.
var Vendors = []string{"Amazon IN", "Flipkart", "MDComputers"}

func vendorList() string {
	quoted := make([]string, len(Vendors))
	for i, v := range Vendors {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

func PopularProducts() string {
	var parts []string

	parts = append(parts, persona)
	parts = append(parts, tone)
	parts = append(parts, fmt.Sprintf("\nPlease generate a list of %d popular and well-regarded computer configurations to display on the main store page.", PopularProductCount))
	parts = append(parts, "Include a mix of Custom Builds, Prebuilt PCs, and Laptops across different price points and use cases.")

	parts = append(parts, "\nFor each product:")
	parts = append(parts, "- Titles MUST be specific and based on key components.")
	parts = append(parts, "- Prices must be in Indian Rupees (INR).")
	parts = append(parts, fmt.Sprintf("- Generate 2-3 purchase options from vendors like %s. Vary the prices slightly for realism.", vendorList()))
	parts = append(parts, "- 'estimatedPriceINR' MUST be the lowest price from the generated purchase options.")
	parts = append(parts, "- Generate 2-3 realistic sample reviews with ratings from varied sources.")
	parts = append(parts, "- Mark the best overall value-for-money option with 'isBestMatch: true'.")
	parts = append(parts, "- Generate a specific, relevant, high-quality image URL from Unsplash Source.")

	parts = append(parts, "\n"+schemaFooter)

	return strings.Join(parts, "\n")
}

func GuidedRecommendation(useCase models.UseCase, answers []models.Answer) string {
	var parts []string

	parts = append(parts, "You are EZYPC, a calm, expert assistant helping a user in Kerala, India, choose a new computer. "+tone)
	parts = append(parts, fmt.Sprintf("\nThe user's primary use case is: %s", useCase))
	parts = append(parts, "Their answers:")
	for _, a := range answers {
		parts = append(parts, fmt.Sprintf("- %s: %s", a.Question, a.Answer))
	}

	parts = append(parts, "\nBased on this, provide 2-3 suitable recommendations.")

	parts = append(parts, "\nIMPORTANT:")
	parts = append(parts, "1. The first recommendation MUST be the best match. Mark 'isBestMatch' as true. All others must be false.")
	parts = append(parts, "2. Titles MUST be specific and based on key components.")
	parts = append(parts, fmt.Sprintf("3. Generate 2-3 purchase options from vendors like %s. Vary prices slightly.", vendorList()))
	parts = append(parts, "4. 'estimatedPriceINR' MUST be the lowest price from the purchase options.")
	parts = append(parts, "5. Generate 2-3 realistic sample reviews with ratings.")
	parts = append(parts, "6. The rationale should be concise and address the user's answers.")
	parts = append(parts, "7. Generate a specific, relevant, high-quality image URL from Unsplash Source.")

	parts = append(parts, "\n"+schemaFooter)

	return strings.Join(parts, "\n")
}

func SimilarProducts(product models.Product, excludeTitles []string) string {
	var parts []string

	parts = append(parts, persona)

	parts = append(parts, "\nA user is currently viewing the following product:")
	parts = append(parts, fmt.Sprintf("- Title: %s", product.Title))
	parts = append(parts, fmt.Sprintf("- Type: %s", product.Type))
	parts = append(parts, fmt.Sprintf("- Price: ₹%d", product.EstimatedPriceINR))

	parts = append(parts, fmt.Sprintf("\nPlease generate a list of %d similar but distinct alternative products.", SimilarProductCount))
	parts = append(parts, "- The recommendations should be in a similar price bracket and for a similar purpose.")

	parts = append(parts, fmt.Sprintf("\nIMPORTANT: DO NOT include the original product or any of the following titles in the results: %s.", strings.Join(excludeTitles, ", ")))

	parts = append(parts, "\nFor each recommended product, follow these rules:")
	parts = append(parts, "- Titles MUST be specific and based on key components.")
	parts = append(parts, fmt.Sprintf("- Generate 2-3 purchase options from vendors like %s. Vary prices slightly.", vendorList()))
	parts = append(parts, "- 'estimatedPriceINR' MUST be the lowest price from the purchase options.")
	parts = append(parts, "- Generate 2-3 realistic sample reviews with ratings.")
	parts = append(parts, "- The rationale should explain why it's a good alternative.")
	parts = append(parts, "- Mark 'isBestMatch' as false for all similar products.")
	parts = append(parts, "- Generate a specific, relevant, high-quality image URL from Unsplash Source.")

	parts = append(parts, "\n"+schemaFooter)

	return strings.Join(parts, "\n")
}

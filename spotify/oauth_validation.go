package spotify

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"tokengate/utils"
)

type OAuthConfigValidationError struct {
	Field   string
	Message string
}

func (e OAuthConfigValidationError) Error() string {
	return fmt.Sprintf("OAuth config error: %s - %s", e.Field, e.Message)
}

type OAuthConfigValidationResult struct {
	IsValid  bool
	Errors   []OAuthConfigValidationError
	Warnings []string
}

func ValidateOAuthConfig() *OAuthConfigValidationResult {
	result := &OAuthConfigValidationResult{
		IsValid:  true,
		Errors:   []OAuthConfigValidationError{},
		Warnings: []string{},
	}

	clientID := os.Getenv("CLIENT_ID")
	clientSecret := os.Getenv("CLIENT_SECRET")
	redirectURI := os.Getenv("REDIRECT_URI")

	fmt.Println("=== Validating OAuth Configuration ===")

	if clientID == "" {
		result.IsValid = false
		result.Errors = append(result.Errors, OAuthConfigValidationError{
			Field:   "CLIENT_ID",
			Message: "is not set",
		})
		fmt.Println("✗ CLIENT_ID is not set")
	} else {
		fmt.Printf("✓ CLIENT_ID is set: %s\n", utils.MaskValue(clientID))
	}

	if clientSecret == "" {
		result.IsValid = false
		result.Errors = append(result.Errors, OAuthConfigValidationError{
			Field:   "CLIENT_SECRET",
			Message: "is not set",
		})
		fmt.Println("✗ CLIENT_SECRET is not set")
	} else {
		fmt.Printf("✓ CLIENT_SECRET is set: %s\n", utils.MaskValue(clientSecret))
	}

	if redirectURI == "" {
		result.IsValid = false
		result.Errors = append(result.Errors, OAuthConfigValidationError{
			Field:   "REDIRECT_URI",
			Message: "is not set",
		})
		fmt.Println("✗ REDIRECT_URI is not set")
	} else {
		fmt.Printf("✓ REDIRECT_URI is set: %s\n", redirectURI)
	}

	if redirectURI != "" {
		if strings.HasPrefix(redirectURI, "https://") {
			fmt.Println("⚠ REDIRECT_URI uses HTTPS (verify the Spotify app settings match)")
		} else if strings.HasPrefix(redirectURI, "http://") {
			if strings.Contains(redirectURI, "localhost") || strings.Contains(redirectURI, "127.0.0.1") {
				fmt.Println("✓ REDIRECT_URI uses HTTP with localhost (acceptable for development)")
			} else {
				result.Warnings = append(result.Warnings, "REDIRECT_URI uses HTTP without localhost (should use HTTPS for production)")
				fmt.Println("⚠ REDIRECT_URI uses HTTP without localhost")
			}
		} else {
			result.IsValid = false
			result.Errors = append(result.Errors, OAuthConfigValidationError{
				Field:   "REDIRECT_URI",
				Message: "has invalid protocol (must start with http:// or https://)",
			})
			fmt.Println("✗ REDIRECT_URI has invalid protocol")
		}

		if _, err := url.Parse(redirectURI); err != nil {
			result.IsValid = false
			result.Errors = append(result.Errors, OAuthConfigValidationError{
				Field:   "REDIRECT_URI",
				Message: fmt.Sprintf("is not a valid URL: %v", err),
			})
			fmt.Printf("✗ REDIRECT_URI is not a valid URL: %v\n", err)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Println("\n=== Warnings ===")
		for _, warning := range result.Warnings {
			fmt.Printf("⚠ %s\n", warning)
		}
	}

	if !result.IsValid {
		fmt.Println("\n=== Configuration Validation Failed ===")
		fmt.Println("The /login, /callback and /refresh_token routes will answer 500 until this is fixed.")
	}

	return result
}

func PrintOAuthConfigSummary() {
	fmt.Println("\n=== OAuth Configuration Summary ===")
	fmt.Println("Current OAuth Settings:")

	clientID := os.Getenv("CLIENT_ID")
	clientSecret := os.Getenv("CLIENT_SECRET")
	redirectURI := os.Getenv("REDIRECT_URI")

	if clientID != "" {
		fmt.Printf("  CLIENT_ID: %s\n", utils.MaskValue(clientID))
	} else {
		fmt.Println("  CLIENT_ID: (not set)")
	}

	if clientSecret != "" {
		fmt.Printf("  CLIENT_SECRET: %s\n", utils.MaskValue(clientSecret))
	} else {
		fmt.Println("  CLIENT_SECRET: (not set)")
	}

	if redirectURI != "" {
		fmt.Printf("  REDIRECT_URI: %s\n", redirectURI)
	} else {
		fmt.Println("  REDIRECT_URI: (not set)")
	}
}

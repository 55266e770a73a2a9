package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

// alphaScore is the known compatibility of the sample roster below
const alphaScore = 61

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	token, err := adminToken()
	if err != nil {
		fmt.Println(err)
		return
	}

	roster := map[string]interface{}{
		"members": []map[string]interface{}{
			{"id": "a1", "fullName": "Lina Benali", "experience": "Beginner", "year": "L1", "skills": []string{"Web Development"}},
			{"id": "a2", "fullName": "Yacine Merah", "experience": "Advanced", "year": "L2", "skills": []string{"AI/ML"}},
		},
	}
	jsonData, _ := json.Marshal(roster)

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/score", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", string(body))

	switch resp.StatusCode {
	case http.StatusOK:
		var result struct {
			Score int `json:"score"`
		}
		_ = json.Unmarshal(body, &result)
		if result.Score == alphaScore {
			fmt.Println("\n✅ Admin auth and scoring are working correctly.")
		} else {
			fmt.Printf("\n❌ Expected score %d, got %d. Check the SCORING_* overrides.\n", alphaScore, result.Score)
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		var result map[string]interface{}
		_ = json.Unmarshal(body, &result)
		fmt.Println("\n❌ Authentication failed. Token might be invalid, expired or not on ADMIN_EMAILS.")
		if errorData, ok := result["error"].(map[string]interface{}); ok {
			fmt.Printf("Error details: %v\n", errorData["message"])
		}
	}
}

// adminToken uses ADMIN_TOKEN when set, otherwise signs a short-lived token
// with SUPABASE_JWT_SECRET for the first ADMIN_EMAILS entry.
func adminToken() (string, error) {
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		return token, nil
	}

	secret := os.Getenv("SUPABASE_JWT_SECRET")
	email := os.Getenv("SMOKE_ADMIN_EMAIL")
	if secret == "" || email == "" {
		return "", fmt.Errorf("set ADMIN_TOKEN, or SUPABASE_JWT_SECRET and SMOKE_ADMIN_EMAIL to mint one")
	}

	claims := jwt.MapClaims{
		"sub":   "smoke-test",
		"email": email,
		"role":  "authenticated",
		"exp":   time.Now().Add(5 * time.Minute).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

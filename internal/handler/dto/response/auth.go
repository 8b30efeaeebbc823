package response

type AuthResponse struct {
	AccessToken string `json:"access_token"`
}

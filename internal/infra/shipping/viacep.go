package shipping

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"shophub/internal/pkg/config"
	"shophub/internal/pkg/errs"
)

var ErrCEPNotFound = errs.New("CEP not found")

// CEPAddress is the subset of the ViaCEP payload the quote calculator needs.
type CEPAddress struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	NotFound     bool   `json:"erro"`
}

type CEPClient struct {
	baseURL string
	client  *http.Client
}

func NewCEPClient(cfg config.ShippingConfig) *CEPClient {
	return &CEPClient{
		baseURL: strings.TrimSuffix(cfg.CEPBaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Lookup resolves a normalized 8-digit CEP. ViaCEP answers 200 with
// {"erro": true} for well-formed codes that do not exist.
func (c *CEPClient) Lookup(ctx context.Context, cep string) (*CEPAddress, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ws/"+cep+"/json/", nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build CEP request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "CEP lookup failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Newf("CEP lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Wrap(err, "failed to read CEP response")
	}

	var address CEPAddress
	if err := json.Unmarshal(body, &address); err != nil {
		return nil, errs.Wrap(err, "failed to decode CEP response")
	}
	if address.NotFound {
		return nil, ErrCEPNotFound
	}

	return &address, nil
}

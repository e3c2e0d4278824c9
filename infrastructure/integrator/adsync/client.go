package adsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/profit-manager-api/internal/config"
	"github.com/vfg2006/profit-manager-api/internal/domain"
)

// SyncResult é a resposta do endpoint remoto de sincronização. A função
// remota busca o gasto na API da plataforma e grava as linhas diárias no
// banco; aqui só interessa se deu certo e a mensagem.
type SyncResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Syncer dispara a sincronização de gasto de anúncios de uma marca em uma
// plataforma. É uma chamada remota, potencialmente lenta e sujeita a falhas.
type Syncer interface {
	SyncAdSpend(ctx context.Context, platform domain.AdPlatform, brandCode string, period domain.Period) (*SyncResult, error)
}

type syncRequest struct {
	BrandCode string `json:"brand_code"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type client struct {
	cfg        *config.Config
	httpClient *http.Client
}

// NewClient cria o cliente HTTP do endpoint de sincronização
func NewClient(cfg *config.Config) Syncer {
	timeout := time.Duration(cfg.AdPlatform.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *client) SyncAdSpend(
	ctx context.Context,
	platform domain.AdPlatform,
	brandCode string,
	period domain.Period,
) (*SyncResult, error) {
	url := fmt.Sprintf("%s/%s", c.cfg.AdPlatform.SyncBaseURL, platform)

	payload, err := json.Marshal(syncRequest{
		BrandCode: brandCode,
		StartDate: period.Start.Format(time.DateOnly),
		EndDate:   period.End.Format(time.DateOnly),
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar requisição de sincronização: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AdPlatform.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"platform":   platform,
			"brand_code": brandCode,
		}).Error("Erro ao fazer a requisição de sincronização")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta de sincronização: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sincronização retornou status %d: %s", resp.StatusCode, string(body))
	}

	var result SyncResult
	if err := json.Unmarshal(body, &result); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &result, nil
}

package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidDateRange    = "VAL_004" // Intervalo de datas inválido

	// Erros do servidor (SRV)
	ErrInternalServer       = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation    = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService      = "SRV_003" // Erro em serviço externo
	ErrConfigurationMissing = "SRV_004" // Nenhuma marca/loja configurada

	// Erros de sincronização (SYNC)
	ErrSyncAlreadyRunning = "SYNC_001" // Sincronização já em andamento
	ErrNothingToSync      = "SYNC_002" // Nenhuma plataforma configurada para sincronizar
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrMissingRequiredData:  http.StatusBadRequest,
	ErrInvalidFormat:        http.StatusBadRequest,
	ErrInvalidDateRange:     http.StatusBadRequest,
	ErrInternalServer:       http.StatusInternalServerError,
	ErrDatabaseOperation:    http.StatusInternalServerError,
	ErrExternalService:      http.StatusBadGateway,
	ErrConfigurationMissing: http.StatusUnprocessableEntity,
	ErrSyncAlreadyRunning:   http.StatusConflict,
	ErrNothingToSync:        http.StatusUnprocessableEntity,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}

package handler

import (
	jsoniter "github.com/json-iterator/go"
)

// json é o codec usado por todos os handlers para requisição e resposta
var json = jsoniter.ConfigCompatibleWithStandardLibrary

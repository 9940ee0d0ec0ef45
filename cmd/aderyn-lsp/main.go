// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/Cyfrin/aderyn-sub000/internal/lsp"
)

const lsName = "aderyn"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	// The client's initialize request replaces the working directory root.
	aderynHandler := lsp.NewHandler(".")

	handler = protocol.Handler{
		Initialize:           aderynHandler.Initialize,
		Initialized:          aderynHandler.Initialized,
		Shutdown:             aderynHandler.Shutdown,
		SetTrace:             aderynHandler.SetTrace,
		TextDocumentDidOpen:  aderynHandler.TextDocumentDidOpen,
		TextDocumentDidSave:  aderynHandler.TextDocumentDidSave,
		TextDocumentDidClose: aderynHandler.TextDocumentDidClose,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Printf("Starting Aderyn LSP server %s...", version)

	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting Aderyn LSP server:", err)
		os.Exit(1)
	}
}

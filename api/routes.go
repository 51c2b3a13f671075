package api

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// API version 1
	api := s.router.Group("/api/v1")
	{
		api.GET("/module-address", s.handleGetModuleAddress)

		// Pool routes
		pools := api.Group("/pools")
		{
			pools.GET("", s.handleGetPools)
			pools.GET("/:pool_id", s.handleGetPool)
			pools.POST("", s.handleCreatePool)
			pools.POST("/:pool_id/liquidity", s.handleAddLiquidity)
		}

		// Routed swaps and quotes
		api.POST("/swap", s.handleSwap)
		api.GET("/quote", s.handleQuote)
		api.GET("/routes", s.handleRoutes)

		// Ledger-backed single pool
		single := api.Group("/single-pool")
		{
			single.GET("", s.handleGetSinglePool)
			single.POST("", s.handleCreateSinglePool)
			single.POST("/swap", s.handleSwapSingle)
			single.GET("/ledger/:account/:index", s.handleGetLedgerBalance)
		}

		// Token ledger
		tokens := api.Group("/tokens")
		{
			tokens.GET("/balance", s.handleGetTokenBalance)
			tokens.GET("/allowance", s.handleGetAllowance)
			tokens.POST("/mint", s.handleMint)
			tokens.POST("/transfer", s.handleTransfer)
			tokens.POST("/approve", s.handleApprove)
		}
	}
}

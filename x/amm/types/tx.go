package types

import "context"

// MsgServer is the transactional surface of the AMM module. Every method is
// all-or-nothing: on error no state written during the call is kept.
type MsgServer interface {
	CreateSinglePool(context.Context, *MsgCreateSinglePool) (*MsgCreateSinglePoolResponse, error)
	SwapSingle(context.Context, *MsgSwapSingle) (*MsgSwapSingleResponse, error)
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
}

package domain

type CtxKey string

const (
	KeyInterpreterID CtxKey = "InterpreterID"
	KeySessionEmail  CtxKey = "SessionEmail"
	KeySessionRole   CtxKey = "SessionRole"
)

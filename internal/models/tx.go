package models

type TransactionType string

const (
	TransactionTypeTokenDeployment        TransactionType = "token_deployment"
	TransactionTypeTestContractDeployment TransactionType = "test_contract_deployment"
	TransactionTypeContractDestroy        TransactionType = "contract_destroy"
	TransactionTypeValueTransfer          TransactionType = "value_transfer"
	TransactionTypeTestValueWrite         TransactionType = "test_value_write"
)

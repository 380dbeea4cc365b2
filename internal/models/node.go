package models

// Node represents a panel node snapshot.
type Node struct {
	UUID         string  `json:"uuid"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Port         FlexInt `json:"port"`
	IsConnected  bool    `json:"isConnected"`
	IsDisabled   bool    `json:"isDisabled"`
	CountryCode  string  `json:"countryCode"`
	UsersOnline  FlexInt `json:"usersOnline"`
	XrayVersion  string  `json:"xrayVersion"`
	LastStatusAt string  `json:"lastStatusChange"`
}

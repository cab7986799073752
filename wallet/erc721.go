package wallet

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ERC721 is the standard non-fungible token interface
var ERC721 = mustParseABI(erc721JSON)

func mustParseABI(def string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("wallet: bad ABI: " + err.Error())
	}
	return &parsed
}

const erc721JSON = `[
  {"type":"event","name":"Approval","anonymous":false,"inputs":[
    {"indexed":true,"name":"owner","type":"address"},
    {"indexed":true,"name":"approved","type":"address"},
    {"indexed":true,"name":"tokenId","type":"uint256"}]},
  {"type":"event","name":"ApprovalForAll","anonymous":false,"inputs":[
    {"indexed":true,"name":"owner","type":"address"},
    {"indexed":true,"name":"operator","type":"address"},
    {"indexed":false,"name":"approved","type":"bool"}]},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"indexed":true,"name":"from","type":"address"},
    {"indexed":true,"name":"to","type":"address"},
    {"indexed":true,"name":"tokenId","type":"uint256"}]},
  {"type":"function","name":"approve","stateMutability":"payable","inputs":[
    {"name":"spender","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[
    {"name":"account","type":"address"}],"outputs":[{"type":"uint256"}]},
  {"type":"function","name":"getApproved","stateMutability":"view","inputs":[
    {"name":"tokenId","type":"uint256"}],"outputs":[{"type":"address"}]},
  {"type":"function","name":"isApprovedForAll","stateMutability":"view","inputs":[
    {"name":"owner","type":"address"},{"name":"operator","type":"address"}],"outputs":[{"type":"bool"}]},
  {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]},
  {"type":"function","name":"ownerOf","stateMutability":"view","inputs":[
    {"name":"tokenId","type":"uint256"}],"outputs":[{"name":"owner","type":"address"}]},
  {"type":"function","name":"safeTransferFrom","stateMutability":"payable","inputs":[
    {"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable","inputs":[
    {"name":"operator","type":"address"},{"name":"approved","type":"bool"}],"outputs":[]},
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]},
  {"type":"function","name":"tokenByIndex","stateMutability":"view","inputs":[
    {"name":"index","type":"uint256"}],"outputs":[{"type":"uint256"}]},
  {"type":"function","name":"tokenOfOwnerByIndex","stateMutability":"view","inputs":[
    {"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"outputs":[{"name":"tokenId","type":"uint256"}]},
  {"type":"function","name":"tokenURI","stateMutability":"view","inputs":[
    {"name":"tokenId","type":"uint256"}],"outputs":[{"type":"string"}]},
  {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
  {"type":"function","name":"transferFrom","stateMutability":"payable","inputs":[
    {"name":"sender","type":"address"},{"name":"recipient","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]}
]`

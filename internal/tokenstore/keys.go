package tokenstore

import "github.com/Aiionteam/app.aiion.site/internal/util"

const keyPrefix = "aiion:"

func accessTokenKey(provider, subjectID string) string {
	return keyPrefix + "token:" + provider + ":access:" + subjectID
}

func refreshTokenKey(provider, subjectID string) string {
	return keyPrefix + "token:" + provider + ":refresh:" + subjectID
}

// authCodeKey hashes the code so raw authorization codes never sit in
// the store.
func authCodeKey(provider, code string) string {
	return keyPrefix + "authcode:" + provider + ":" + util.SHA256Hex(code)
}

package password

import "golang.org/x/crypto/bcrypt"

// Hash 以 bcrypt 產生密碼雜湊（cost 10，與既有帳號資料相容）
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify 比對 bcrypt 雜湊與明文
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

package strrule

// EditDistance trả về khoảng cách Levenshtein giữa a và b tính theo rune.
// Chỉ giữ một hàng DP có độ dài min(len(a), len(b)) + 1.
func EditDistance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) < len(br) {
		ar, br = br, ar
	}
	if len(br) == 0 {
		return len(ar)
	}

	row := make([]int, len(br)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			up := row[j]
			row[j] = min3(up+1, row[j-1]+1, diag+cost)
			diag = up
		}
	}
	return row[len(br)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

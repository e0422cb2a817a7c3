package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "requestId"
	HeaderRequestID     = "X-Request-ID"
)

// 位置取值与前端下拉保持一致
var FootballPositions = []string{
	"quarterback", "running_back", "wide_receiver", "tight_end", "offensive_line",
	"defensive_line", "linebacker", "cornerback", "safety", "kicker", "punter",
}

func IsValidPosition(p string) bool {
	for _, v := range FootballPositions {
		if v == p {
			return true
		}
	}
	return false
}

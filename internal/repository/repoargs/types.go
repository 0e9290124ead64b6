package repoargs

type RepositoryName string

const (
	CustomerRepoName   RepositoryName = "customer"
	SaleRepoName       RepositoryName = "sale"
	EarningRepoName    RepositoryName = "earning"
	PaymentRepoName    RepositoryName = "payment"
	TeamMemberRepoName RepositoryName = "team_member"
	ProfileRepoName    RepositoryName = "profile"
)

// BatchExecQueryRow вызывается для каждого элемента батч запроса с индексом элемента и ошибкой его выполнения.
type BatchExecQueryRow func(i int, err error)
